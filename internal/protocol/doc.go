// Package protocol implements the dictionary messages exchanged between the
// textwatch face and its companion.
//
// A message is a flat dictionary of integer keys to typed values. The same
// dictionary carries settings (invert, alignment, language), glucose readings
// and the face's request for fresh data.
//
// # Wire Format
//
// Dictionaries are encoded little-endian:
//   - Count: 1 byte, number of tuples
//   - Per tuple: key (4 bytes), type (1 byte), length (2 bytes), value
//
// Tuple types:
//   - 0: byte array
//   - 1: NUL terminated string
//   - 2: unsigned integer (1, 2 or 4 bytes)
//   - 3: signed integer (1, 2 or 4 bytes)
//
// # Keys
//
//	KeyInvert       0   uint8, non-zero inverts the face
//	KeyTextAlign    1   uint8, 0 center, 1 left, 2 right
//	KeyLanguage     2   uint8, index into the language table
//	KeyGlucoseValue 10  int32
//	KeyTrendValue   11  int32
//	KeyRequestData  12  uint8, presence is the signal
//	KeyTimestamp    13  int32, epoch seconds
//
// # Buffers
//
// The face accepts inbound dictionaries of at least MinInboxSize bytes and
// sends dictionaries of at most its outbox size, never smaller than
// MinOutboxSize. Encode fails with ErrBufferOverflow when a dictionary does
// not fit the given limit.
//
// # Usage Example
//
//	d := protocol.NewGlucose(120, 5, time.Now().Unix())
//	data, err := protocol.Encode(d, protocol.MinOutboxSize)
//	if err != nil {
//	    return err
//	}
//	err = conn.WriteMessage(websocket.BinaryMessage, data)
//
// # Thread Safety
//
// Encode and Decode are stateless. A Dict is not safe for concurrent
// mutation.
package protocol
