package governance

import (
	"fmt"
	"math"
	"regexp"
)

// #region patterns

// PatternRule maps a regex over the raw query to a misconception probability.
type PatternRule struct {
	Pattern     string  `mapstructure:"pattern" yaml:"pattern"`
	Probability float64 `mapstructure:"probability" yaml:"probability"`
}

// DefaultPatterns is the stock misconception table.
func DefaultPatterns() []PatternRule {
	return []PatternRule{
		{`(?i)great wall.*(visible|seen|see).*(space|moon|orbit)`, 0.9},
		{`(?i)(only|just) (use|using) (10|ten) ?(%|percent)`, 0.9},
		{`(?i)goldfish.*(memory|remember).*(second|3|three)`, 0.85},
		{`(?i)(earth is flat|flat earth)`, 0.95},
		{`(?i)vaccines? (cause|causes|causing) autism`, 0.95},
		{`(?i)lightning never strikes`, 0.8},
		{`(?i)bulls?.*(hate|angry|enraged|mad).*red`, 0.7},
		{`(?i)crack(ing)? (your )?knuckles.*arthritis`, 0.75},
		{`(?i)swallow.*spiders?.*sleep`, 0.8},
		{`(?i)napoleon.*short`, 0.7},
		{`(?i)is it true that`, 0.35},
		{`(?i)\b(always|never)\b`, 0.3},
	}
}

type compiledRule struct {
	re *regexp.Regexp
	p  float64
}

// PatternTable estimates misconception probability when the delegated
// reasoner is unavailable.
type PatternTable struct {
	rules []compiledRule
	low   float64
	high  float64
}

// NewPatternTable compiles rules in order. low is the floor returned when
// nothing matches; high caps every estimate.
func NewPatternTable(rules []PatternRule, low, high float64) (*PatternTable, error) {
	pt := &PatternTable{low: low, high: high}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile misconception pattern %d: %w", i, err)
		}
		pt.rules = append(pt.rules, compiledRule{re: re, p: r.Probability})
	}
	return pt, nil
}

// MustPatternTable is NewPatternTable for tables known to compile.
func MustPatternTable(rules []PatternRule, low, high float64) *PatternTable {
	pt, err := NewPatternTable(rules, low, high)
	if err != nil {
		panic(err)
	}
	return pt
}

// Estimate returns the maximum probability across matching rules, never
// below the floor and never above the cap.
func (pt *PatternTable) Estimate(query string) float64 {
	best := pt.low
	for _, r := range pt.rules {
		if r.re.MatchString(query) {
			best = math.Max(best, r.p)
		}
	}
	return math.Min(best, pt.high)
}

// #endregion patterns
