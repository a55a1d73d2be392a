package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrNotScalar = errors.New("value is not a scalar")

type Field struct {
	Key   string
	Value Value
}

// Object is a JSON object that remembers the order its keys appeared in.
// A repeated key keeps its first position and takes the last value.
type Object []Field

func (o *Object) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	fields := Object{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("invalid value for %q: %w", key, err)
		}

		value := Value{raw: raw}
		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = fields
	return nil
}

func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(f.Value.Raw())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Object) Get(key string) (Value, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, f := range o {
		keys = append(keys, f.Key)
	}
	return keys
}

// Value is a single undecoded JSON value.
type Value struct {
	raw json.RawMessage
}

func NewValue(raw string) Value {
	return Value{raw: json.RawMessage(raw)}
}

func (v Value) Raw() json.RawMessage {
	if len(v.raw) == 0 {
		return json.RawMessage("null")
	}
	return v.raw
}

func (v Value) first() byte {
	trimmed := bytes.TrimSpace(v.raw)
	if len(trimmed) == 0 {
		return 'n'
	}
	return trimmed[0]
}

func (v Value) IsNull() bool {
	return v.first() == 'n'
}

func (v Value) IsObject() bool {
	return v.first() == '{'
}

// Truthy reports whether a flag-style value is switched on. Booleans are taken
// as-is, strings go through strconv.ParseBool, anything else is off.
func (v Value) Truthy() bool {
	switch v.first() {
	case 't':
		return true
	case '"':
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return false
		}
		b, err := strconv.ParseBool(s)
		return err == nil && b
	default:
		return false
	}
}

// Scalar renders a string, number or boolean the way it should appear on a
// command line. Integral numbers are written in plain decimal.
func (v Value) Scalar() (string, error) {
	switch c := v.first(); {
	case c == '"':
		var s string
		if err := json.Unmarshal(v.raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(v.raw, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return formatNumber(string(bytes.TrimSpace(v.raw)))
	default:
		return "", ErrNotScalar
	}
}

func (v Value) Object() (Object, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("expected JSON object, got %s", v.Raw())
	}
	var obj Object
	if err := json.Unmarshal(v.raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func formatNumber(text string) (string, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return "", fmt.Errorf("invalid number %q: %w", text, err)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return text, nil
}
