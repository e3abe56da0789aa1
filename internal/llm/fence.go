package llm

import (
	"strings"

	"github.com/VJd357/Happyplates/internal/domain"
)

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// ExtractFencedJSON locates the structured payload embedded in a free-form
// model reply: the substring strictly between the first "```json" opening
// marker and the last "```" closing marker, trimmed of surrounding
// whitespace. A missing delimiter or an empty result is a ParseError; the
// text is never guessed at or repaired.
func ExtractFencedJSON(reply string) (string, error) {
	open := strings.Index(reply, fenceOpen)
	if open < 0 {
		return "", domain.ParseError("reply has no opening ```json fence", nil)
	}
	start := open + len(fenceOpen)

	end := strings.LastIndex(reply, fenceClose)
	if end < start {
		return "", domain.ParseError("reply has no closing ``` fence", nil)
	}

	candidate := strings.TrimSpace(reply[start:end])
	if candidate == "" {
		return "", domain.ParseError("fenced JSON block is empty", nil)
	}

	return candidate, nil
}
