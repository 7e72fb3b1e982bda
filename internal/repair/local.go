package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
)

// LocalKnowledge answers a narrow set of queries without any provider. It is
// consulted only when the delegated call fails.
type LocalKnowledge interface {
	Answer(query string) (string, bool)
}

// StaticKnowledge answers "capital of <place>" from a fixed table and simple
// "<number> <op> <number>" arithmetic.
type StaticKnowledge struct {
	Capitals map[string]string
}

// NewStaticKnowledge uses lexicon.Capitals.
func NewStaticKnowledge() *StaticKnowledge {
	return &StaticKnowledge{Capitals: lexicon.Capitals}
}

var (
	localCapitalRe = regexp.MustCompile(`(?i)capital of\s+(?:the\s+)?([\p{L} .'-]+)`)
	arithmeticRe   = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*([-+*/])\s*(-?\d+(?:\.\d+)?)`)
)

// Answer implements LocalKnowledge.
func (k *StaticKnowledge) Answer(query string) (string, bool) {
	if m := localCapitalRe.FindStringSubmatch(query); m != nil {
		place := strings.Trim(strings.TrimSpace(m[1]), ".")
		if capital, ok := k.Capitals[strings.ToLower(place)]; ok {
			return fmt.Sprintf("The capital of %s is %s.", place, capital), true
		}
	}
	if m := arithmeticRe.FindStringSubmatch(query); m != nil {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[3], 64)
		if errA != nil || errB != nil {
			return "", false
		}
		var v float64
		switch m[2] {
		case "+":
			v = a + b
		case "-":
			v = a - b
		case "*":
			v = a * b
		case "/":
			if b == 0 {
				return "", false
			}
			v = a / b
		}
		return fmt.Sprintf("%s %s %s = %s", m[1], m[2], m[3], strconv.FormatFloat(v, 'f', -1, 64)), true
	}
	return "", false
}

// Interpretation is the placeholder used when no local answer exists.
func Interpretation(query string) string {
	return fmt.Sprintf("I interpreted your request as %q, but I could not reach a reasoning provider to answer it.", strings.TrimSpace(query))
}
