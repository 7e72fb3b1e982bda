package orchestrator

// #region imports
import (
	"regexp"
	"strings"

	"github.com/jaredlewiswechs/AdanAgent/internal/lexicon"
	"github.com/jaredlewiswechs/AdanAgent/internal/repair"
)

// #endregion

// #region eli5

const simplePrefix = "Simple take:"

var jargon = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\bdeterministic\b`), "certain"},
	{regexp.MustCompile(`(?i)\bprobabilistic\b`), "guess-based"},
	{regexp.MustCompile(`(?i)\bepistemic\b`), "truth-checking"},
	{regexp.MustCompile(`(?i)\bsemantic\b`), "meaning"},
	{regexp.MustCompile(`(?i)\bmanifold\b`), "map"},
	{regexp.MustCompile(`(?i)\btrajectory\b`), "path"},
}

// Rewrite adapts a cleaned response to the requested complexity. Only ELI5
// changes the text.
func Rewrite(text string, c Complexity) string {
	if c != ComplexityELI5 {
		return text
	}
	for _, j := range jargon {
		text = j.re.ReplaceAllString(text, j.repl)
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), strings.ToLower(simplePrefix)) {
		text = simplePrefix + " " + strings.TrimSpace(text)
	}
	return text
}

// #endregion

// #region lexical-merge

var (
	asksSynonyms = regexp.MustCompile(`(?i)\bsynonyms?\b|\bsimilar words?\b|\banother word for\b`)
	asksAntonyms = regexp.MustCompile(`(?i)\bantonyms?\b|\bopposites?\b`)
)

// MergeLexical unions the reasoner's lists with local associations for every
// query keyword. Entries are trimmed, deduplicated case-insensitively and
// capped. Placeholders are injected only when the query asks for a list and
// every source came back empty.
func MergeLexical(query string, synonyms, antonyms []string) (syn, ant []string) {
	syn = appendUnique(nil, synonyms)
	ant = appendUnique(nil, antonyms)

	for _, tok := range strings.Fields(query) {
		ws, ok := lexicon.Associations[lexicon.Normalize(tok)]
		if !ok {
			continue
		}
		syn = appendUnique(syn, ws.Synonyms)
		ant = appendUnique(ant, ws.Antonyms)
	}

	if len(syn) == 0 && asksSynonyms.MatchString(query) {
		syn = appendUnique(syn, lexicon.PlaceholderSynonyms)
	}
	if len(ant) == 0 && asksAntonyms.MatchString(query) {
		ant = appendUnique(ant, lexicon.PlaceholderAntonyms)
	}
	if syn == nil {
		syn = []string{}
	}
	if ant == nil {
		ant = []string{}
	}
	return syn, ant
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if len(dst) >= repair.MaxLexicalItems {
			break
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		dup := false
		for _, d := range dst {
			if strings.EqualFold(d, s) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}

// #endregion
