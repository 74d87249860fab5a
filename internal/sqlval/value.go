package sqlval

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a bind value for one '?' placeholder.
type Value interface {
	sqlValue() // Sealed - only the types in this package implement it
	Kind() Kind
}

// Kind names a Value variant.
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

// String returns the lowercase kind name used in JSON and text output.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Null binds SQL NULL.
type Null struct{}

func (Null) sqlValue() {}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Integer binds a 64-bit signed integer.
type Integer int64

func (Integer) sqlValue() {}

// Kind implements Value.
func (Integer) Kind() Kind { return KindInteger }

// Real binds a 64-bit float.
type Real float64

func (Real) sqlValue() {}

// Kind implements Value.
func (Real) Kind() Kind { return KindReal }

// Text binds a string.
type Text string

func (Text) sqlValue() {}

// Kind implements Value.
func (Text) Kind() Kind { return KindText }

// Blob binds a byte sequence.
type Blob []byte

func (Blob) sqlValue() {}

// Kind implements Value.
func (Blob) Kind() Kind { return KindBlob }

// Native converts v to the Go type database/sql drivers accept:
// nil, int64, float64, string or []byte.
func Native(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Integer:
		return int64(val)
	case Real:
		return float64(val)
	case Text:
		return string(val)
	case Blob:
		return []byte(val)
	default:
		panic(fmt.Sprintf("sqlval: unknown value type %T", v))
	}
}

// NativeAll converts every value with Native.
func NativeAll(values []Value) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = Native(v)
	}
	return args
}

// Format returns a compact, unambiguous text form:
// null, integer(40), real(1.5), text("a"), blob(0a0b).
func Format(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case Integer:
		return fmt.Sprintf("integer(%d)", int64(val))
	case Real:
		return "real(" + strconv.FormatFloat(float64(val), 'g', -1, 64) + ")"
	case Text:
		return "text(" + strconv.Quote(string(val)) + ")"
	case Blob:
		return "blob(" + hex.EncodeToString(val) + ")"
	default:
		return fmt.Sprintf("unknown(%T)", v)
	}
}

// FormatAll formats every value with Format.
func FormatAll(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Format(v)
	}
	return out
}

// wireValue is the JSON envelope: {"type":"integer","value":40}.
// Blob values are base64 strings; non-finite reals are strings.
type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalValue encodes v as a typed JSON envelope.
func MarshalValue(v Value) ([]byte, error) {
	var (
		payload any
		kind    Kind
	)
	switch val := v.(type) {
	case nil, Null:
		return json.Marshal(wireValue{Type: KindNull.String()})
	case Integer:
		kind, payload = KindInteger, int64(val)
	case Real:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			kind, payload = KindReal, strconv.FormatFloat(f, 'g', -1, 64)
		} else {
			kind, payload = KindReal, f
		}
	case Text:
		kind, payload = KindText, string(val)
	case Blob:
		kind, payload = KindBlob, []byte(val)
	default:
		return nil, fmt.Errorf("unknown value type: %T", v)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	return json.Marshal(wireValue{Type: kind.String(), Value: raw})
}

// UnmarshalValue decodes the envelope produced by MarshalValue.
func UnmarshalValue(data []byte) (Value, error) {
	var w wireValue
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return nil, err
	}

	switch w.Type {
	case "null":
		return Null{}, nil
	case "integer":
		var n int64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return nil, fmt.Errorf("integer value: %w", err)
		}
		return Integer(n), nil
	case "real":
		var f float64
		if err := json.Unmarshal(w.Value, &f); err == nil {
			return Real(f), nil
		}
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return nil, fmt.Errorf("real value: %w", err)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("real value: %w", err)
		}
		return Real(f), nil
	case "text":
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return nil, fmt.Errorf("text value: %w", err)
		}
		return Text(s), nil
	case "blob":
		var b []byte
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return nil, fmt.Errorf("blob value: %w", err)
		}
		return Blob(b), nil
	default:
		return nil, fmt.Errorf("unknown value type %q", w.Type)
	}
}

// List is a bind sequence with JSON support.
type List []Value

// MarshalJSON encodes each value as a typed envelope.
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("list[%d]: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an array of typed envelopes.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(List, len(raw))
	for i, r := range raw {
		v, err := UnmarshalValue(r)
		if err != nil {
			return fmt.Errorf("list[%d]: %w", i, err)
		}
		out[i] = v
	}
	*l = out
	return nil
}
