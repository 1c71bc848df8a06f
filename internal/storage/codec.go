package storage

import (
	"encoding/json"
	"fmt"
)

// envelope wraps a collection with its schema version.
type envelope[T any] struct {
	Schema  int `json:"schema"`
	Records []T `json:"records"`
}

// EncodeRecords marshals a collection into its versioned envelope.
func EncodeRecords[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	b, err := json.MarshalIndent(envelope[T]{Schema: SchemaVersion, Records: records}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return b, nil
}

// DecodeRecords unmarshals a persisted collection. Absent or malformed data
// yields an empty collection rather than an error; a bare top-level array
// (the pre-envelope layout) is still accepted.
func DecodeRecords[T any](data []byte) []T {
	if len(data) == 0 {
		return []T{}
	}
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err == nil && env.Records != nil {
		return env.Records
	}
	var bare []T
	if err := json.Unmarshal(data, &bare); err == nil && bare != nil {
		return bare
	}
	return []T{}
}
