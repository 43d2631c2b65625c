package companion

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muurk/textwatch/internal/protocol"
)

// ReadCapture parses a JSON Lines capture file. Blank lines are skipped.
func ReadCapture(r io.Reader) ([]CaptureRecord, error) {
	var records []CaptureRecord

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec CaptureRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return records, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}

// Summary counts captured messages by kind
type Summary struct {
	Total     int
	Inbound   int
	Outbound  int
	Requests  int
	Readings  int
	Settings  int
	Undecoded int
}

// Summarize classifies every record by decoding its payload
func Summarize(records []CaptureRecord) Summary {
	var s Summary
	for _, rec := range records {
		s.Total++
		switch rec.Direction {
		case DirectionInbound:
			s.Inbound++
		case DirectionOutbound:
			s.Outbound++
		}

		d, err := decodeRecord(rec)
		if err != nil {
			s.Undecoded++
			continue
		}
		if protocol.IsRequest(d) {
			s.Requests++
		}
		if _, ok := protocol.ReadingFrom(d); ok {
			s.Readings++
		}
		if !protocol.SettingsFrom(d).Empty() {
			s.Settings++
		}
	}
	return s
}

func decodeRecord(rec CaptureRecord) (*protocol.Dict, error) {
	payload, err := hex.DecodeString(rec.PayloadHex)
	if err != nil {
		return nil, fmt.Errorf("bad payload hex: %w", err)
	}
	return protocol.Decode(payload, 0)
}

// Analyze writes a readable breakdown of one captured message to w
func Analyze(w io.Writer, rec CaptureRecord) {
	payload, err := hex.DecodeString(rec.PayloadHex)
	if err != nil {
		fmt.Fprintf(w, "Message #%d: bad payload hex: %v\n\n", rec.MessageNum, err)
		return
	}

	fmt.Fprintf(w, "========================================\n")
	fmt.Fprintf(w, "Message #%d - %d bytes - %s\n", rec.MessageNum, len(payload), rec.Timestamp.Format("15:04:05.000"))
	fmt.Fprintf(w, "%s %s\n", rec.Direction, rec.RemoteAddr)
	fmt.Fprintf(w, "========================================\n\n")

	d, err := protocol.Decode(payload, 0)
	if err != nil {
		fmt.Fprintf(w, "Decode failed: %v\n\n", err)
	} else {
		fmt.Fprintln(w, "Tuples:")
		fmt.Fprintln(w, "Key              Type     Len  Value")
		fmt.Fprintln(w, "---------------- -------- ---- ------------")
		for _, t := range d.Tuples() {
			fmt.Fprintf(w, "%-16s %-8s %4d %s\n", t.Key, t.Type, len(t.Value), tupleValue(t))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Hex Dump (16 bytes/line):")
	hexDump(w, payload)
	fmt.Fprintln(w)
}

func tupleValue(t protocol.Tuple) string {
	switch t.Type {
	case protocol.TypeCString:
		return fmt.Sprintf("%q", t.CString())
	case protocol.TypeInt:
		if v, ok := t.Int(); ok {
			return fmt.Sprintf("%d", v)
		}
	case protocol.TypeUint:
		if v, ok := t.Uint(); ok {
			return fmt.Sprintf("%d", v)
		}
	}
	return hex.EncodeToString(t.Value)
}

func hexDump(w io.Writer, payload []byte) {
	for i := 0; i < len(payload); i += 16 {
		fmt.Fprintf(w, "%04x  ", i)

		for j := 0; j < 16; j++ {
			if i+j < len(payload) {
				fmt.Fprintf(w, "%02x ", payload[i+j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}

		end := i + 16
		if end > len(payload) {
			end = len(payload)
		}
		fmt.Fprintf(w, " |%s|\n", toASCII(payload[i:end]))
	}
}
