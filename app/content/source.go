// Package content loads the read-only JSON fixtures behind the portfolio.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	// ErrUnavailable means the fixture could not be read.
	ErrUnavailable = errors.New("content unavailable")
	// ErrMalformed means the fixture was read but is not a record list.
	ErrMalformed = errors.New("content malformed")
)

// Keys under which a wrapper object may hold the record array.
var (
	ProjectKeys = []string{"projects", "items", "data"}
	BlogKeys    = []string{"blogs", "posts", "articles", "items", "data"}
)

// Source is one JSON fixture file holding records of type T. The last good
// decode is cached and reused until the file's modification time changes.
type Source[T any] struct {
	Path string
	Keys []string

	mu      sync.Mutex
	modTime time.Time
	size    int64
	records []T
}

// NewSource creates a Source for the file at path.
func NewSource[T any](path string, keys []string) *Source[T] {
	return &Source[T]{Path: path, Keys: keys}
}

// Load returns the records in file order.
func (s *Source[T]) Load() ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.Path, err)
	}
	if s.records != nil && info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return s.records, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, s.Path, err)
	}
	records, err := Decode[T](data, s.Keys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	s.records = records
	s.modTime = info.ModTime()
	s.size = info.Size()
	return records, nil
}

// Decode parses data as either a bare JSON array of T, or an object whose
// first present key in keys holds that array.
func Decode[T any](data []byte, keys []string) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	switch data[0] {
	case '[':
		var records []T
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nonNil(records), nil
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for _, key := range keys {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}
			var records []T
			if err := json.Unmarshal(raw, &records); err != nil {
				return nil, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
			}
			return nonNil(records), nil
		}
		return nil, fmt.Errorf("%w: object has none of the keys %v", ErrMalformed, keys)
	default:
		return nil, fmt.Errorf("%w: expected an array or object", ErrMalformed)
	}
}

func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
