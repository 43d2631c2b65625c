package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MinInboxSize is the smallest inbound buffer the face accepts.
	MinInboxSize = 256

	// MinOutboxSize is the smallest outbound buffer the face accepts.
	MinOutboxSize = 128

	headerSize      = 1
	tupleHeaderSize = 4 + 1 + 2
	maxTuples       = 255
)

// ErrBufferOverflow is returned when a dictionary does not fit its buffer.
var ErrBufferOverflow = errors.New("dictionary exceeds buffer size")

// DecodeError describes a malformed dictionary.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed dictionary at offset %d: %s", e.Offset, e.Reason)
}

// NormalizeSizes raises requested buffer sizes to the minimums.
func NormalizeSizes(inbox, outbox int) (int, int) {
	if inbox < MinInboxSize {
		inbox = MinInboxSize
	}
	if outbox < MinOutboxSize {
		outbox = MinOutboxSize
	}
	return inbox, outbox
}

// EncodedSize returns the number of bytes Encode would produce.
func EncodedSize(d *Dict) int {
	n := headerSize
	for _, t := range d.tuples {
		n += tupleHeaderSize + len(t.Value)
	}
	return n
}

// Encode serializes d. A limit of zero or less disables the size check.
func Encode(d *Dict, limit int) ([]byte, error) {
	if d.Len() > maxTuples {
		return nil, fmt.Errorf("too many tuples: %d", d.Len())
	}
	size := EncodedSize(d)
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrBufferOverflow, size, limit)
	}

	buf := make([]byte, size)
	buf[0] = byte(d.Len())
	off := headerSize
	for _, t := range d.tuples {
		if len(t.Value) > 0xffff {
			return nil, fmt.Errorf("tuple %s value too long: %d bytes", t.Key, len(t.Value))
		}
		binary.LittleEndian.PutUint32(buf[off:], uint32(t.Key))
		buf[off+4] = byte(t.Type)
		binary.LittleEndian.PutUint16(buf[off+5:], uint16(len(t.Value)))
		off += tupleHeaderSize
		copy(buf[off:], t.Value)
		off += len(t.Value)
	}
	return buf, nil
}

// Decode parses an encoded dictionary. Data longer than limit is rejected
// with ErrBufferOverflow before any parsing; a limit of zero or less
// disables the check.
func Decode(data []byte, limit int) (*Dict, error) {
	if limit > 0 && len(data) > limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrBufferOverflow, len(data), limit)
	}
	if len(data) < headerSize {
		return nil, &DecodeError{Offset: 0, Reason: "empty message"}
	}

	count := int(data[0])
	d := &Dict{tuples: make([]Tuple, 0, count)}
	off := headerSize
	for i := 0; i < count; i++ {
		if len(data)-off < tupleHeaderSize {
			return nil, &DecodeError{Offset: off, Reason: fmt.Sprintf("truncated header for tuple %d", i)}
		}
		key := Key(binary.LittleEndian.Uint32(data[off:]))
		typ := TupleType(data[off+4])
		n := int(binary.LittleEndian.Uint16(data[off+5:]))
		off += tupleHeaderSize

		if typ > TypeInt {
			return nil, &DecodeError{Offset: off - 3, Reason: fmt.Sprintf("unknown tuple type %d", typ)}
		}
		if len(data)-off < n {
			return nil, &DecodeError{Offset: off, Reason: fmt.Sprintf("value of %s needs %d bytes, have %d", key, n, len(data)-off)}
		}
		if (typ == TypeInt || typ == TypeUint) && n != 1 && n != 2 && n != 4 {
			return nil, &DecodeError{Offset: off, Reason: fmt.Sprintf("invalid integer width %d", n)}
		}

		d.put(Tuple{Key: key, Type: typ, Value: append([]byte(nil), data[off:off+n]...)})
		off += n
	}
	if off != len(data) {
		return nil, &DecodeError{Offset: off, Reason: fmt.Sprintf("%d trailing bytes", len(data)-off)}
	}
	return d, nil
}
