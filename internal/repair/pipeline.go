package repair

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// #region stages

// Stage names the parser step that produced a result.
type Stage string

const (
	StageStrictJSON    Stage = "StrictJSON"
	StageFencedJSON    Stage = "FencedJSON"
	StageBalancedBrace Stage = "BalancedBraceExtraction"
	StageKeyedRegex    Stage = "KeyedRegexExtraction"
	StageRawText       Stage = "RawText"
)

// Parsed is the tagged output of the pipeline. Fields is never nil.
type Parsed struct {
	Stage  Stage
	Fields map[string]any
}

// stageFunc returns ok=false to fall through to the next stage.
type stageFunc func(raw string) (map[string]any, bool)

var pipeline = []struct {
	stage Stage
	run   stageFunc
}{
	{StageStrictJSON, strictJSON},
	{StageFencedJSON, fencedJSON},
	{StageBalancedBrace, balancedBrace},
	{StageKeyedRegex, keyedRegex},
}

// Parse runs the stages in order and returns the first success. It never
// fails: the last stage takes the cleaned raw text as the response.
func Parse(raw string) Parsed {
	for _, s := range pipeline {
		if fields, ok := s.run(raw); ok {
			return Parsed{Stage: s.stage, Fields: fields}
		}
	}
	return Parsed{Stage: StageRawText, Fields: map[string]any{"response": CleanResponse(raw)}}
}

// #endregion stages

// #region json-stages

func decodeObject(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func strictJSON(raw string) (map[string]any, bool) {
	return decodeObject(raw)
}

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

func fencedJSON(raw string) (map[string]any, bool) {
	m := fenceRe.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}
	return decodeObject(m[1])
}

// balancedBrace decodes the first brace-balanced span, then the widest
// first-{ to last-} span.
func balancedBrace(raw string) (map[string]any, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, false
	}
	if end := matchBrace(raw, start); end > start {
		if m, ok := decodeObject(raw[start : end+1]); ok {
			return m, true
		}
	}
	if end := strings.LastIndexByte(raw, '}'); end > start {
		return decodeObject(raw[start : end+1])
	}
	return nil, false
}

// matchBrace returns the index of the brace closing raw[start], skipping
// braces inside JSON strings, or -1.
func matchBrace(raw string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// #endregion json-stages

// #region keyed-regex

var (
	stringKeys = []string{"response", "entity", "equation", "action"}
	numberKeys = []string{"correctness", "misconception"}
	keyRes     = map[string]*regexp.Regexp{}
)

func init() {
	for _, k := range stringKeys {
		keyRes[k] = regexp.MustCompile(`"` + k + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	}
	for _, k := range numberKeys {
		keyRes[k] = regexp.MustCompile(`"` + k + `"\s*:\s*"?(-?\d+(?:\.\d+)?)`)
	}
}

// keyedRegex pulls individual known keys out of JSON-shaped prose.
func keyedRegex(raw string) (map[string]any, bool) {
	fields := map[string]any{}
	for _, k := range stringKeys {
		if m := keyRes[k].FindStringSubmatch(raw); m != nil {
			fields[k] = unescape(m[1])
		}
	}
	for _, k := range numberKeys {
		if m := keyRes[k].FindStringSubmatch(raw); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				fields[k] = f
			}
		}
	}
	if len(fields) == 0 {
		return nil, false
	}
	return fields, true
}

func unescape(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}

// #endregion keyed-regex
