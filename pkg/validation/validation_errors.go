package validation

import (
	"fmt"
	"strings"
)

// FieldError describes one violated rule. The shape mirrors what the website
// client already renders: {type, value, msg, path, location}.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
}

// Errors is the full list of violations for one submission.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Path, fe.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether any error references the given field path.
func (e Errors) Has(path string) bool {
	for _, fe := range e {
		if fe.Path == path {
			return true
		}
	}
	return false
}
