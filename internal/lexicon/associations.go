package lexicon

// #region associations

// WordSet is a pair of fallback synonym and antonym lists.
type WordSet struct {
	Synonyms []string
	Antonyms []string
}

// Associations maps lowercase keywords to locally-known word lists. The
// engine merges these with whatever the delegated reasoner reports.
var Associations = map[string]WordSet{
	"happy":   {Synonyms: []string{"joyful", "content", "cheerful", "glad"}, Antonyms: []string{"sad", "unhappy", "miserable"}},
	"sad":     {Synonyms: []string{"unhappy", "sorrowful", "downcast"}, Antonyms: []string{"happy", "joyful", "cheerful"}},
	"big":     {Synonyms: []string{"large", "huge", "vast", "enormous"}, Antonyms: []string{"small", "tiny", "little"}},
	"small":   {Synonyms: []string{"little", "tiny", "minor"}, Antonyms: []string{"big", "large", "huge"}},
	"fast":    {Synonyms: []string{"quick", "rapid", "swift"}, Antonyms: []string{"slow", "sluggish"}},
	"slow":    {Synonyms: []string{"sluggish", "gradual", "unhurried"}, Antonyms: []string{"fast", "quick", "rapid"}},
	"good":    {Synonyms: []string{"fine", "excellent", "sound"}, Antonyms: []string{"bad", "poor", "inferior"}},
	"bad":     {Synonyms: []string{"poor", "inferior", "faulty"}, Antonyms: []string{"good", "excellent"}},
	"true":    {Synonyms: []string{"accurate", "correct", "factual"}, Antonyms: []string{"false", "untrue", "wrong"}},
	"truth":   {Synonyms: []string{"fact", "reality", "accuracy"}, Antonyms: []string{"falsehood", "lie", "fiction"}},
	"certain": {Synonyms: []string{"sure", "definite", "assured"}, Antonyms: []string{"uncertain", "doubtful", "unsure"}},
	"strong":  {Synonyms: []string{"powerful", "sturdy", "robust"}, Antonyms: []string{"weak", "frail", "feeble"}},
	"light":   {Synonyms: []string{"bright", "illumination", "glow"}, Antonyms: []string{"dark", "darkness", "shadow"}},
	"hot":     {Synonyms: []string{"warm", "heated", "scorching"}, Antonyms: []string{"cold", "cool", "freezing"}},
	"cold":    {Synonyms: []string{"chilly", "cool", "freezing"}, Antonyms: []string{"hot", "warm", "heated"}},
	"begin":   {Synonyms: []string{"start", "commence", "initiate"}, Antonyms: []string{"end", "finish", "conclude"}},
	"love":    {Synonyms: []string{"affection", "devotion", "adoration"}, Antonyms: []string{"hate", "hatred", "loathing"}},
	"smart":   {Synonyms: []string{"intelligent", "clever", "bright"}, Antonyms: []string{"dull", "foolish", "ignorant"}},
}

// PlaceholderSynonyms are injected when a query asks for synonyms and no
// source produced any.
var PlaceholderSynonyms = []string{"equivalent", "alternative", "counterpart"}

// PlaceholderAntonyms are injected when a query asks for antonyms and no
// source produced any.
var PlaceholderAntonyms = []string{"opposite", "contrary", "reverse"}

// #endregion associations
