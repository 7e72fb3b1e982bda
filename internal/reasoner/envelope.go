package reasoner

import (
	"encoding/json"
	"strings"
)

// UnwrapEnvelope extracts the generated text from a raw provider body.
// Recognized shapes: a chat-completion envelope (choices[0].message.content),
// a {message:{content}} object, a {content: ...} object and a bare array of
// {text} blocks. Content that is itself an array of blocks is flattened
// recursively and newline-joined. Anything else is returned trimmed.
func UnwrapEnvelope(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return trimmed
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	if text, ok := fromEnvelope(v); ok && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text)
	}
	return trimmed
}

func fromEnvelope(v any) (string, bool) {
	switch t := v.(type) {
	case map[string]any:
		if choices, ok := t["choices"].([]any); ok && len(choices) > 0 {
			if first, ok := choices[0].(map[string]any); ok {
				if msg, ok := first["message"].(map[string]any); ok {
					return FlattenContent(msg["content"])
				}
				if text, ok := first["text"].(string); ok {
					return text, true
				}
			}
			return "", false
		}
		if msg, ok := t["message"].(map[string]any); ok {
			if c, ok := msg["content"]; ok {
				return FlattenContent(c)
			}
		}
		if c, ok := t["content"]; ok {
			return FlattenContent(c)
		}
	case []any:
		return FlattenContent(t)
	}
	return "", false
}

// FlattenContent normalizes a content value that is either a plain string or
// a (possibly nested) list of {text} blocks.
func FlattenContent(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		var parts []string
		for _, item := range t {
			if s, ok := FlattenContent(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "\n"), true
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			return s, true
		}
		if c, ok := t["content"]; ok {
			return FlattenContent(c)
		}
	}
	return "", false
}
