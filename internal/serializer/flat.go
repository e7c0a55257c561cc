package serializer

import (
	"bytes"
	"encoding/json"
)

// Flat is a flat structured record that remembers its field order. The
// composer emits fields in the schema's declared order, not in map
// iteration order, and Flat preserves that through JSON marshalling.
type Flat struct {
	order  []string
	values Values
}

func newFlat(capacity int) *Flat {
	return &Flat{
		order:  make([]string, 0, capacity),
		values: make(Values, capacity),
	}
}

func (f *Flat) set(name string, value any) {
	if _, seen := f.values[name]; !seen {
		f.order = append(f.order, name)
	}
	f.values[name] = value
}

// Get returns the value for a field
func (f *Flat) Get(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Fields returns the field names in declared order
func (f *Flat) Fields() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Len returns the number of fields present
func (f *Flat) Len() int {
	return len(f.order)
}

// Map returns a copy of the record as a plain Values map
func (f *Flat) Map() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// MarshalJSON emits the record as a JSON object with keys in declared order
func (f *Flat) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
