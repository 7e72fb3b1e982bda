package orchestrator

// #region imports
import (
	"fmt"
	"strings"
	"time"

	"github.com/jaredlewiswechs/AdanAgent/internal/reasoner"
	"github.com/jaredlewiswechs/AdanAgent/internal/result"
)

// #endregion

// MaxHistoryTurns bounds the session history embedded in the prompt.
const MaxHistoryTurns = 6

// #region prompt

const instructions = `Follow these steps:
(a) Recall the facts relevant to the input.
(b) Estimate the probability that the input rests on a misconception.
(c) Never abstain. If you detect a misconception, bridge it with the corrected answer.
(d) Preserve full entity names, including honorifics and suffixes.
(e) Reply with strict JSON only, no prose outside the object, with exactly these fields:
{"correctness": number 0-1, "misconception": number 0-1, "entity": string, "equation": string, "response": string, "synonyms": [string], "antonyms": [string], "action": "RESPOND"|"ABSTAIN"|"CLARIFY"|"DEFER"|"ESCALATE"}`

// BuildPrompt renders the system and user messages for one governed call.
// Only the last MaxHistoryTurns turns of history are embedded.
func BuildPrompt(now time.Time, complexity Complexity, history []result.Turn, evidence, query string) []reasoner.Message {
	var b strings.Builder
	b.WriteString("You are Ada, an epistemic governance engine.\n")
	fmt.Fprintf(&b, "Current date/time: %s\n", now.Format("Monday, January 2, 2006 15:04 MST"))
	fmt.Fprintf(&b, "Complexity level: %s\n", complexity)

	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}
	if len(history) > 0 {
		b.WriteString("\nSession history (oldest first):\n")
		for _, t := range history {
			fmt.Fprintf(&b, "User: %s\nAda: %s\n", t.Query, t.Answer)
		}
	}
	if evidence != "" {
		b.WriteString("\n")
		b.WriteString(evidence)
	}

	b.WriteString("\n")
	b.WriteString(instructions)

	return []reasoner.Message{
		{Role: reasoner.RoleSystem, Content: b.String()},
		{Role: reasoner.RoleUser, Content: query},
	}
}

// #endregion
