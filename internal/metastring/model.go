package metastring

import (
	"maps"
	"slices"
)

// Reserved keys are always owned by the parser. Pairs may overwrite them, but
// doing so raises a Warning.
const (
	KeyRaw  = "rstr"
	KeyDate = "date"
	KeyTime = "time"
)

// Metadata maps field names parsed out of a filename to their values.
type Metadata map[string]string

// IsReserved reports whether key is one of rstr, date or time.
func IsReserved(key string) bool {
	switch key {
	case KeyRaw, KeyDate, KeyTime:
		return true
	}
	return false
}

// Raw returns the string the metadata was parsed from.
func (m Metadata) Raw() string {
	return m[KeyRaw]
}

// Date returns the YYYY-MM-DD date token, if one was present.
func (m Metadata) Date() (string, bool) {
	v, ok := m[KeyDate]
	return v, ok
}

// Time returns HH:MM for simple timestamps or the verbatim extended token.
func (m Metadata) Time() (string, bool) {
	v, ok := m[KeyTime]
	return v, ok
}

// Keys returns every key in lexical order.
func (m Metadata) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

// Fields returns the non-reserved keys in lexical order.
func (m Metadata) Fields() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if !IsReserved(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Clone returns an independent copy.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Warning records a pair that overwrote a reserved key.
type Warning struct {
	Input    string
	Key      string
	Previous string
	Value    string
	// HadPrevious is false when the reserved key was not yet set (date or time
	// absent from the prefix).
	HadPrevious bool
}

func (w Warning) String() string {
	return w.Key + " is a reserved key"
}
