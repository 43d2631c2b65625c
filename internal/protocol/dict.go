package protocol

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Key identifies a dictionary entry.
type Key uint32

const (
	KeyInvert       Key = 0
	KeyTextAlign    Key = 1
	KeyLanguage     Key = 2
	KeyGlucoseValue Key = 10
	KeyTrendValue   Key = 11
	KeyRequestData  Key = 12
	KeyTimestamp    Key = 13
)

var keyNames = map[Key]string{
	KeyInvert:       "INVERT",
	KeyTextAlign:    "TEXT_ALIGN",
	KeyLanguage:     "LANGUAGE",
	KeyGlucoseValue: "GLUCOSE_VALUE",
	KeyTrendValue:   "TREND_VALUE",
	KeyRequestData:  "REQUEST_DATA",
	KeyTimestamp:    "TIMESTAMP",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KEY_%d", uint32(k))
}

// TupleType is the value type of a tuple.
type TupleType uint8

const (
	TypeBytes   TupleType = 0
	TypeCString TupleType = 1
	TypeUint    TupleType = 2
	TypeInt     TupleType = 3
)

func (t TupleType) String() string {
	switch t {
	case TypeBytes:
		return "bytes"
	case TypeCString:
		return "cstring"
	case TypeUint:
		return "uint"
	case TypeInt:
		return "int"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Tuple is a single key/value entry. Value holds the raw little-endian bytes
// for integers and the NUL terminated bytes for strings.
type Tuple struct {
	Key   Key
	Type  TupleType
	Value []byte
}

// Int returns the tuple value as a signed integer.
// Unsigned values are widened, byte arrays and strings return false.
func (t Tuple) Int() (int64, bool) {
	switch t.Type {
	case TypeInt:
		switch len(t.Value) {
		case 1:
			return int64(int8(t.Value[0])), true
		case 2:
			return int64(int16(binary.LittleEndian.Uint16(t.Value))), true
		case 4:
			return int64(int32(binary.LittleEndian.Uint32(t.Value))), true
		}
	case TypeUint:
		v, ok := t.Uint()
		return int64(v), ok
	}
	return 0, false
}

// Uint returns the tuple value as an unsigned integer.
func (t Tuple) Uint() (uint64, bool) {
	if t.Type != TypeUint && t.Type != TypeInt {
		return 0, false
	}
	switch len(t.Value) {
	case 1:
		return uint64(t.Value[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(t.Value)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(t.Value)), true
	}
	return 0, false
}

// CString returns the string value without its terminator.
func (t Tuple) CString() string {
	if t.Type != TypeCString {
		return ""
	}
	s := string(t.Value)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}

// Dict is an ordered dictionary. Writing an existing key replaces its value
// in place.
type Dict struct {
	tuples []Tuple
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{}
}

// Len returns the number of tuples.
func (d *Dict) Len() int {
	return len(d.tuples)
}

// Tuples returns the tuples in insertion order.
func (d *Dict) Tuples() []Tuple {
	return d.tuples
}

// Find returns the tuple for key.
func (d *Dict) Find(key Key) (Tuple, bool) {
	for _, t := range d.tuples {
		if t.Key == key {
			return t, true
		}
	}
	return Tuple{}, false
}

// Has reports whether key is present.
func (d *Dict) Has(key Key) bool {
	_, ok := d.Find(key)
	return ok
}

// Int returns the integer value for key.
func (d *Dict) Int(key Key) (int64, bool) {
	t, ok := d.Find(key)
	if !ok {
		return 0, false
	}
	return t.Int()
}

func (d *Dict) put(t Tuple) {
	for i := range d.tuples {
		if d.tuples[i].Key == t.Key {
			d.tuples[i] = t
			return
		}
	}
	d.tuples = append(d.tuples, t)
}

// WriteUint8 stores an unsigned byte.
func (d *Dict) WriteUint8(key Key, v uint8) {
	d.put(Tuple{Key: key, Type: TypeUint, Value: []byte{v}})
}

// WriteInt32 stores a signed 32-bit integer.
func (d *Dict) WriteInt32(key Key, v int32) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(v))
	d.put(Tuple{Key: key, Type: TypeInt, Value: buf})
}

// WriteCString stores a NUL terminated string.
func (d *Dict) WriteCString(key Key, s string) {
	buf := make([]byte, 0, len(s)+1)
	buf = append(buf, s...)
	buf = append(buf, 0)
	d.put(Tuple{Key: key, Type: TypeCString, Value: buf})
}

// WriteBytes stores a raw byte array.
func (d *Dict) WriteBytes(key Key, b []byte) {
	d.put(Tuple{Key: key, Type: TypeBytes, Value: append([]byte(nil), b...)})
}

// String renders the dictionary for logs.
func (d *Dict) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, t := range d.tuples {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.Key.String())
		sb.WriteString("=")
		switch t.Type {
		case TypeInt:
			v, _ := t.Int()
			fmt.Fprintf(&sb, "%d", v)
		case TypeUint:
			v, _ := t.Uint()
			fmt.Fprintf(&sb, "%d", v)
		case TypeCString:
			fmt.Fprintf(&sb, "%q", t.CString())
		default:
			fmt.Fprintf(&sb, "% x", t.Value)
		}
	}
	sb.WriteString("}")
	return sb.String()
}
