package reasoner

import (
	"errors"
	"fmt"
	"strings"
)

// AttemptError describes one failed attempt against one model.
type AttemptError struct {
	Provider  string
	Model     string
	Attempt   int
	Status    int // HTTP status, 0 when not applicable
	Retryable bool
	Err       error
}

func (e *AttemptError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	if e.Model != "" {
		b.WriteString("/" + e.Model)
	}
	if e.Attempt > 0 {
		fmt.Fprintf(&b, " attempt %d", e.Attempt)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " status %d", e.Status)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *AttemptError) Unwrap() error { return e.Err }

// ExhaustedError is returned by Client.Call when every provider failed.
// It carries every per-attempt failure in order.
type ExhaustedError struct {
	Failures []error
}

func newExhaustedError(errs []error) *ExhaustedError {
	return &ExhaustedError{Failures: flatten(errs)}
}

func (e *ExhaustedError) Error() string {
	if len(e.Failures) == 0 {
		return "all providers failed: no providers configured"
	}
	msgs := make([]string, len(e.Failures))
	for i, err := range e.Failures {
		msgs[i] = err.Error()
	}
	return "all providers failed: " + strings.Join(msgs, "; ")
}

func (e *ExhaustedError) Unwrap() []error { return e.Failures }

// flatten expands errors.Join trees into a flat list.
func flatten(errs []error) []error {
	var out []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if j, ok := err.(interface{ Unwrap() []error }); ok {
			out = append(out, flatten(j.Unwrap())...)
			continue
		}
		out = append(out, err)
	}
	return out
}

// IsExhausted reports whether err came from a fully exhausted chain.
func IsExhausted(err error) bool {
	var ex *ExhaustedError
	return errors.As(err, &ex)
}
