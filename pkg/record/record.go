// Package record provides an insertion-ordered field mapping for subject
// records. Field order is part of the record's identity: marshaling a record
// and unmarshaling it again yields the same field sequence, so downstream
// consumers (exports, audit trails, diffing) see stable output.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	dErrors "privacyguard/pkg/domain-errors"
)

// Reserved keys carry engine-managed metadata inside a record. They are
// written by appliers and skipped by classification and encryption.
const (
	KeyConsent      = "_consent"
	KeyDeletionMeta = "_deletionMeta"
	KeyCCPARights   = "_ccpaRights"
)

var reservedKeys = map[string]struct{}{
	KeyConsent:      {},
	KeyDeletionMeta: {},
	KeyCCPARights:   {},
}

// IsReserved reports whether key is engine-managed metadata rather than
// subject data.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Record is an ordered string-to-value mapping. The zero value is not usable;
// construct with New or by unmarshaling JSON.
type Record struct {
	keys   []string
	values map[string]any
}

// New returns an empty record.
func New() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key, appending the key if it is new and keeping its
// original position if it already exists.
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key and its value. Removing an absent key is a no-op.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of fields, reserved keys included.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in insertion order. The slice is a copy.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// DataKeys returns the field names in insertion order, excluding reserved
// metadata keys.
func (r *Record) DataKeys() []string {
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		if !IsReserved(k) {
			out = append(out, k)
		}
	}
	return out
}

// Range calls fn for each field in insertion order until fn returns false.
// The record must not be mutated during iteration.
func (r *Record) Range(fn func(key string, value any) bool) {
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy. Nested maps and slices are copied recursively so
// mutations of the clone never leak into the original.
func (r *Record) Clone() *Record {
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the record as a JSON object with fields in insertion
// order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the field order of the
// input. Top-level numbers decode as json.Number so values survive an
// encode-decode round trip without float drift.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "record must be a JSON object")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return dErrors.New(dErrors.CodeInvalidInput, "record must be a JSON object")
	}

	r.keys = r.keys[:0]
	r.values = make(map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed record object")
		}
		key, ok := keyTok.(string)
		if !ok {
			return dErrors.New(dErrors.CodeInvalidInput, "record keys must be strings")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("malformed value for field %q", key))
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed record object")
	}
	return nil
}
