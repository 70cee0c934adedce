package llm

import _ "embed"

var (
	//go:embed prompts/phrase_v1.txt
	phrasePromptV1 string
)

// PromptTemplate returns the prompt template text and whether the version was recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "phrase_v1":
		return phrasePromptV1, true
	default:
		return phrasePromptV1, false
	}
}
