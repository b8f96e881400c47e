package llm

import (
	"bytes"
	"encoding/json"
)

// UnparsedResponse is returned by ParseResponse when no usable text can be found.
const UnparsedResponse = "could not parse response"

// ParseResponse extracts the "response" field from a model reply. It never fails: malformed
// JSON, a missing or null field, or a structured value all yield UnparsedResponse with ok=false.
// Scalar non-string values are returned as their JSON literal.
func ParseResponse(raw []byte) (text string, ok bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return UnparsedResponse, false
	}
	field, found := doc["response"]
	if !found {
		return UnparsedResponse, false
	}

	trimmed := bytes.TrimSpace(field)
	if len(trimmed) == 0 {
		return UnparsedResponse, false
	}
	switch trimmed[0] {
	case '{', '[', 'n':
		return UnparsedResponse, false
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return UnparsedResponse, false
		}
		return s, true
	default:
		return string(trimmed), true
	}
}
