package holdings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order in which
// they are written. Its zero value is ready to use, the first error sticks.
type jsonObjectWriter struct {
	keys   []string
	values []json.RawMessage
	err    error
}

func (w *jsonObjectWriter) raw(key string, value json.RawMessage) *jsonObjectWriter {
	w.keys = append(w.keys, key)
	w.values = append(w.values, value)
	return w
}

// Field writes key with value encoded by json.Marshal.
func (w *jsonObjectWriter) Field(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("field %q: %w", key, err)
		return w
	}
	return w.raw(key, data)
}

// OmitEmpty writes key only if value is not the zero value of its type.
func (w *jsonObjectWriter) OmitEmpty(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Field(key, value)
}

// Amount writes the value of m, rounded to the minor unit of its currency.
// The currency is left to the enclosing object.
func (w *jsonObjectWriter) Amount(key string, m Money) *jsonObjectWriter {
	return w.Field(key, m.value.Round(int32(m.currency().Fraction)))
}

// List writes a slice, a nil slice is written as [] rather than null.
func (w *jsonObjectWriter) List(key string, slice any) *jsonObjectWriter {
	if v := reflect.ValueOf(slice); v.Kind() == reflect.Slice && v.IsNil() {
		return w.raw(key, json.RawMessage("[]"))
	}
	return w.Field(key, slice)
}

// Merge writes every field of the object v encodes to, in its order.
func (w *jsonObjectWriter) Merge(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("merge %T: %w", v, err)
		return w
	}
	return w.MergeRaw(data)
}

// MergeRaw writes the fields of the raw JSON object data.
func (w *jsonObjectWriter) MergeRaw(data []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		w.err = fmt.Errorf("merge: not a JSON object: %s", data)
		return w
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			w.err = fmt.Errorf("merge: %w", err)
			return w
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			w.err = fmt.Errorf("merge: %w", err)
			return w
		}
		w.raw(tok.(string), value)
	}
	return w
}

// MarshalJSON returns the object, or the first error met while writing it.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range w.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		b.Write(k)
		b.WriteByte(':')
		b.Write(w.values[i])
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
