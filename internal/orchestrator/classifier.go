package orchestrator

// #region imports
import "strings"

// #endregion

// #region keywords

var eli5Keywords = []string{
	"eli5", "explain like i'm five", "explain like im five", "explain like i am five",
	"in simple terms", "simply put", "for a kid", "for kids", "for a child",
	"layman", "plain english", "dumb it down", "simple explanation",
}

var technicalKeywords = []string{
	"in detail", "technical", "technically", "derivation", "derive",
	"formally", "formal definition", "rigorous", "proof", "mechanism",
	"algorithm", "equation", "quantitative", "peer-reviewed", "citation",
}

// #endregion

// #region follow-up-words

// followUpWords are short prompts that typically continue the previous topic.
var followUpWords = []string{
	"why", "how", "and", "but", "so",
	"really", "tell me more", "go on", "elaborate",
	"what do you mean", "in what way", "like what",
}

// #endregion

// #region classify

// InferComplexity picks an explanation depth via keyword heuristics. No
// model call. prev carries the previous turn's complexity; short follow-ups
// inherit it.
func InferComplexity(query string, prev ...Complexity) Complexity {
	lower := strings.ToLower(strings.TrimSpace(query))

	for _, kw := range eli5Keywords {
		if strings.Contains(lower, kw) {
			return ComplexityELI5
		}
	}
	for _, kw := range technicalKeywords {
		if strings.Contains(lower, kw) {
			return ComplexityTechnical
		}
	}

	if len(prev) > 0 && prev[0] != "" && len(strings.Fields(lower)) <= 8 && isFollowUp(lower) {
		return prev[0]
	}
	return ComplexityStandard
}

// #endregion

// #region follow-up-detection

func isFollowUp(lower string) bool {
	for _, fw := range followUpWords {
		if lower == fw || strings.HasPrefix(lower, fw+" ") || strings.HasPrefix(lower, fw+"?") {
			return true
		}
	}
	// Bare short question ("why?", "and then?")
	return strings.HasSuffix(lower, "?") && len(strings.Fields(lower)) <= 3
}

// #endregion
