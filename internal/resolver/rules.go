package resolver

import (
	"regexp"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
)

// #region pattern-rules

// PatternRule is a Tier 1 rule. The first capture group is the entity.
type PatternRule struct {
	Regex *regexp.Regexp
	Shape lexicon.QueryShape
}

// DefaultPatterns is evaluated in order; the first match wins.
var DefaultPatterns = []PatternRule{
	{regexp.MustCompile(`(?i)\bcapital of\s+(.+)`), lexicon.ShapeCapitalOf},
	{regexp.MustCompile(`(?i)\bpopulation of\s+(.+)`), lexicon.ShapePopulationOf},
	{regexp.MustCompile(`(?i)\bwho (?:is |was )?(?:the )?founder of\s+(.+)`), lexicon.ShapeFounderOf},
	{regexp.MustCompile(`(?i)\b(?:define|definition of)\s+(.+)`), lexicon.ShapeDefinition},
	{regexp.MustCompile(`(?i)\bwho wrote\s+(.+)`), lexicon.ShapeAuthorOf},
	{regexp.MustCompile(`(?i)\bwho invented\s+(.+)`), lexicon.ShapeInventorOf},
	{regexp.MustCompile(`(?i)\bwho is the (?:president|prime minister) of\s+(.+)`), lexicon.ShapeLeaderOf},
	{regexp.MustCompile(`(?i)\bwhat is the currency of\s+(.+)`), lexicon.ShapeCurrencyOf},
	{regexp.MustCompile(`(?i)\bwhere is\s+(.+)`), lexicon.ShapeLocationOf},
}

// matchPattern returns the first rule matching query and its cleaned entity.
func matchPattern(rules []PatternRule, query string) (PatternRule, string, bool) {
	for _, r := range rules {
		m := r.Regex.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		entity := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), "?"))
		if entity == "" {
			continue
		}
		return r, entity, true
	}
	return PatternRule{}, "", false
}

// MatchShape runs the default Tier 1 rules only.
func MatchShape(query string) (lexicon.QueryShape, string, bool) {
	r, entity, ok := matchPattern(DefaultPatterns, query)
	if !ok {
		return lexicon.ShapeUnknown, "", false
	}
	return r.Shape, entity, true
}

// #endregion pattern-rules

// #region cluster-rules

// ClusterRule is a Tier 2 rule.
type ClusterRule struct {
	Name     string
	Keywords map[string]bool
	Shape    lexicon.QueryShape
}

// DefaultClusters mirrors lexicon.Clusters in check order.
func DefaultClusters() []ClusterRule {
	out := make([]ClusterRule, len(lexicon.Clusters))
	for i, c := range lexicon.Clusters {
		out[i] = ClusterRule{Name: c.Name, Keywords: c.Keywords, Shape: c.Shape}
	}
	return out
}

// clusterMatch is the Tier 2 scoring outcome.
type clusterMatch struct {
	rule   ClusterRule
	score  int
	tiedBy []string // later clusters that reached the same score
}

// scoreClusters counts keyword overlap per cluster. Ties go to the cluster
// checked first: a later cluster must score strictly higher to win.
func scoreClusters(rules []ClusterRule, query string) (clusterMatch, bool) {
	tokens := lexicon.Tokenize(query, 2)
	var best clusterMatch
	for _, r := range rules {
		score := 0
		for _, tok := range tokens {
			if r.Keywords[tok] {
				score++
			}
		}
		switch {
		case score > best.score:
			best = clusterMatch{rule: r, score: score}
		case score > 0 && score == best.score:
			best.tiedBy = append(best.tiedBy, r.Name)
		}
	}
	return best, best.score >= 1
}

// extractEntity keeps the original whitespace tokens whose normalized form is
// neither a winning keyword nor a noise word.
func extractEntity(query string, keywords map[string]bool) string {
	var kept []string
	for _, tok := range strings.Fields(query) {
		norm := lexicon.Normalize(tok)
		if keywords[norm] || lexicon.NoiseWords[norm] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return "Unknown"
	}
	return strings.Join(kept, " ")
}

// #endregion cluster-rules
