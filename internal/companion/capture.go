package companion

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/muurk/textwatch/internal/logging"
	"github.com/muurk/textwatch/internal/protocol"
	"go.uber.org/zap"
)

// Message directions recorded in a capture
const (
	DirectionInbound  = "face->companion"
	DirectionOutbound = "companion->face"
)

// CaptureRecord is one captured message
type CaptureRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	MessageNum   int       `json:"message_num"`
	RemoteAddr   string    `json:"remote_addr"`
	Direction    string    `json:"direction"`
	PayloadLen   int       `json:"payload_length"`
	PayloadHex   string    `json:"payload_hex"`
	PayloadAscii string    `json:"payload_ascii"`
	Dict         string    `json:"dict,omitempty"`
}

// Capture appends every message crossing the hub to a JSON Lines file.
// A nil Capture records nothing.
type Capture struct {
	mu    sync.Mutex
	path  string
	count int
}

// NewCapture creates dir if needed and names a capture file after the
// current time
func NewCapture(dir string) (*Capture, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create capture directory: %w", err)
	}
	name := fmt.Sprintf("capture-%s.jsonl", time.Now().Format("20060102-150405"))
	return &Capture{path: filepath.Join(dir, name)}, nil
}

// Path returns the capture file path
func (c *Capture) Path() string {
	return c.path
}

// Record appends one message to the capture file
func (c *Capture) Record(remoteAddr, direction string, payload []byte) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++

	rec := CaptureRecord{
		Timestamp:    time.Now(),
		MessageNum:   c.count,
		RemoteAddr:   remoteAddr,
		Direction:    direction,
		PayloadLen:   len(payload),
		PayloadHex:   hex.EncodeToString(payload),
		PayloadAscii: toASCII(payload),
	}
	if d, err := protocol.Decode(payload, 0); err == nil {
		rec.Dict = d.String()
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logging.Error("Failed to open capture file",
			zap.String("filename", c.path),
			zap.Error(err),
		)
		return
	}
	defer func() { _ = f.Close() }()

	data, err := json.Marshal(rec)
	if err != nil {
		logging.Error("Failed to marshal capture record", zap.Error(err))
		return
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		logging.Error("Failed to write to capture file",
			zap.String("filename", c.path),
			zap.Error(err),
		)
	}
}

// toASCII converts bytes to ASCII string (non-printable chars become '.')
func toASCII(data []byte) string {
	result := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			result[i] = b
		} else {
			result[i] = '.'
		}
	}
	return string(result)
}
