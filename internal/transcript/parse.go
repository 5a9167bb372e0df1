package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode"
)

// ErrInputParse marks an unreadable or non-JSON input file. Fatal.
var ErrInputParse = errors.New("input parse error")

// ErrMalformedRecord marks a message record that is not a JSON object.
// Fatal; propagated, never swallowed.
var ErrMalformedRecord = errors.New("malformed message record")

// exportFile matches the object form of an export: {"messages": [...]}.
type exportFile struct {
	Messages []json.RawMessage `json:"messages"`
}

// LoadFile reads an export file and returns its raw message records.
// The file may hold either a bare JSON array of records or an object
// with a "messages" array.
func LoadFile(path string) ([]RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInputParse, path, err)
	}
	return Parse(data)
}

// Parse decodes export JSON into raw message records.
func Parse(data []byte) ([]RawMessage, error) {
	var elems []json.RawMessage

	if err := json.Unmarshal(data, &elems); err != nil {
		var wrapper exportFile
		if err2 := json.Unmarshal(data, &wrapper); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputParse, err)
		}
		elems = wrapper.Messages
	}

	msgs := make([]RawMessage, 0, len(elems))
	for i, elem := range elems {
		if !isJSONObject(elem) {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrMalformedRecord, i)
		}
		var raw RawMessage
		if err := json.Unmarshal(elem, &raw); err != nil {
			// A field with an unexpected type decodes best-effort; only a
			// structurally broken object is fatal.
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedRecord, i, err)
			}
		}
		msgs = append(msgs, raw)
	}
	return msgs, nil
}

func isJSONObject(data []byte) bool {
	for _, b := range data {
		if unicode.IsSpace(rune(b)) {
			continue
		}
		return b == '{'
	}
	return false
}
