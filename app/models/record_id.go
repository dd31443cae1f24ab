package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RecordID identifies a project or blog record. Fixture files use either
// numbers or strings, so both decode into the same textual form.
type RecordID string

// String returns the identifier text.
func (id RecordID) String() string { return string(id) }

// IsZero reports whether the identifier is empty.
func (id RecordID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Valid reports whether the identifier can name a page. It must be
// non-empty and contain no path separator, since it becomes a URL path
// segment and a file name.
func (id RecordID) Valid() bool {
	return !id.IsZero() && !strings.ContainsAny(string(id), "/\\")
}

// UnmarshalJSON accepts a JSON string or number.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number, got %s", data)
	}
	*id = RecordID(n.String())
	return nil
}

// ParseRecordID normalises an identifier taken from a URL or cookie.
func ParseRecordID(raw string) RecordID {
	return RecordID(strings.TrimSpace(raw))
}
