package generate

// Curated lexical tables. These are deliberately small, hand-built
// lists: the pipeline trades coverage for predictability.

// familyGroups maps a recognized collocation head (usually a light
// verb) to the nouns it typically selects. When the head is found in
// the example sentence, the group members become first-priority
// confusable distractors for the blanked noun.
var familyGroups = map[string][]string{
	"make":  {"decision", "mistake", "effort", "promise", "progress", "choice", "difference", "plan"},
	"take":  {"break", "photo", "risk", "chance", "decision", "note", "nap", "step"},
	"do":    {"homework", "research", "business", "favor", "damage", "exercise", "laundry"},
	"have":  {"breakfast", "meeting", "look", "rest", "argument", "shower", "conversation"},
	"give":  {"advice", "answer", "speech", "example", "permission", "reason", "lecture"},
	"reach": {"agreement", "conclusion", "decision", "goal", "compromise", "limit"},
	"pay":   {"attention", "visit", "compliment", "bill", "respect", "price"},
	"catch": {"cold", "bus", "train", "glimpse", "attention", "breath"},
	"keep":  {"promise", "secret", "diary", "distance", "record", "balance"},
	"break": {"promise", "record", "silence", "habit", "rule", "news"},
}

// posPools are static per-POS distractor pools, the lowest-priority
// curated source before the relax fallback.
var posPools = map[string][]string{
	"NOUN": {
		"idea", "reason", "result", "problem", "question", "answer",
		"moment", "amount", "purpose", "method", "example", "detail",
	},
	"VERB": {
		"consider", "suggest", "provide", "require", "improve",
		"describe", "explain", "include", "prepare", "expect",
	},
	"ADJ": {
		"important", "difficult", "similar", "common", "serious",
		"available", "successful", "necessary", "typical", "useful",
	},
	"ADV": {
		"quickly", "carefully", "suddenly", "recently", "probably",
		"usually", "certainly", "clearly", "finally", "slightly",
	},
}

// relaxGenerics are the high-frequency fillers used by the relax
// fallback outside grammar mode: safe, common words of the matching
// POS that rarely collide with the answer.
var relaxGenerics = map[string][]string{
	"NOUN": {"thing", "place", "point", "part", "case", "way"},
	"VERB": {"want", "need", "start", "help", "show", "keep"},
	"ADJ":  {"good", "small", "early", "late", "open", "full"},
	"ADV":  {"often", "really", "almost", "still", "soon", "again"},
}
