package companion

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/muurk/textwatch/internal/config"
	"github.com/muurk/textwatch/internal/protocol"
	"github.com/muurk/textwatch/internal/words"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Unix(1700000000, 0)

func newTestHub(opts ...HubOption) *Hub {
	opts = append([]HubOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewHub(config.Defaults(), opts...)
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostGlucose(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		want     Data
	}{
		{
			name:     "all fields",
			body:     `{"value":120,"trend":5,"timestamp":1699999000}`,
			wantCode: http.StatusOK,
			want:     Data{Value: 120, Trend: 5, Timestamp: 1699999000},
		},
		{
			name:     "defaults",
			body:     `{"value":95}`,
			wantCode: http.StatusOK,
			want:     Data{Value: 95, Trend: -1, Timestamp: fixedNow.Unix()},
		},
		{
			name:     "missing value",
			body:     `{"trend":2}`,
			wantCode: http.StatusBadRequest,
			want:     Data{Trend: -1},
		},
		{
			name:     "not json",
			body:     `value=1`,
			wantCode: http.StatusBadRequest,
			want:     Data{Trend: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := newTestHub()
			r := hub.Router("/ws")

			w := doJSON(t, r, http.MethodPost, "/glucose", tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := hub.Data(); got != tt.want {
				t.Errorf("Data() = %+v, want %+v", got, tt.want)
			}

			w = doJSON(t, r, http.MethodGet, "/glucose", "")
			var got Data
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("GET /glucose = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPutSettings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want config.Settings
	}{
		{
			name: "known values",
			body: `{"invert":true,"text_align":"left","lang":"de"}`,
			want: config.Settings{Invert: true, TextAlign: config.AlignLeft, Language: words.German},
		},
		{
			name: "unknown values",
			body: `{"invert":false,"text_align":"diagonal","lang":"xx"}`,
			want: config.Settings{TextAlign: config.AlignCenter, Language: words.EnglishUS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := newTestHub()
			r := hub.Router("/ws")

			w := doJSON(t, r, http.MethodPut, "/settings", tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if got := hub.Settings(); got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}

			w = doJSON(t, r, http.MethodGet, "/settings", "")
			var body settingsBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body != settingsJSON(tt.want) {
				t.Errorf("GET /settings = %+v, want %+v", body, settingsJSON(tt.want))
			}
		})
	}
}

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Router("/ws"))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readDict(t *testing.T, conn *websocket.Conn) *protocol.Dict {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", kind)
	}
	d, err := protocol.Decode(data, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return d
}

func sendDict(t *testing.T, conn *websocket.Conn, d *protocol.Dict) {
	t.Helper()
	data, err := protocol.Encode(d, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestServeWS_SettingsOnConnect(t *testing.T) {
	hub := NewHub(config.Settings{Invert: true, TextAlign: config.AlignRight, Language: words.German})
	conn := dialHub(t, hub)

	update := protocol.SettingsFrom(readDict(t, conn))
	if update.Invert == nil || !*update.Invert {
		t.Errorf("Invert = %v, want true", update.Invert)
	}
	if update.TextAlign == nil || *update.TextAlign != uint8(config.AlignRight) {
		t.Errorf("TextAlign = %v, want right", update.TextAlign)
	}
	if update.Language == nil || *update.Language != uint8(words.German) {
		t.Errorf("Language = %v, want de", update.Language)
	}
	if hub.Peers() != 1 {
		t.Errorf("Peers() = %d, want 1", hub.Peers())
	}
}

func TestServeWS_Request(t *testing.T) {
	hub := newTestHub()
	conn := dialHub(t, hub)
	readDict(t, conn) // settings

	// no data yet: request is logged and not answered
	sendDict(t, conn, protocol.NewRequest())

	hub.Update(120, 5, 0)
	reading, ok := protocol.ReadingFrom(readDict(t, conn))
	if !ok {
		t.Fatal("pushed message carries no reading")
	}
	if reading.Value != 120 || reading.Trend != 5 || reading.Timestamp != fixedNow.Unix() {
		t.Errorf("pushed reading = %+v", reading)
	}

	sendDict(t, conn, protocol.NewRequest())
	reading, ok = protocol.ReadingFrom(readDict(t, conn))
	if !ok || reading.Value != 120 {
		t.Errorf("reply = %+v, %v, want value 120", reading, ok)
	}
}

func TestServeWS_SettingsPush(t *testing.T) {
	hub := newTestHub()
	conn := dialHub(t, hub)
	readDict(t, conn)

	hub.SetSettings(config.Settings{Language: words.EnglishGB})
	update := protocol.SettingsFrom(readDict(t, conn))
	if update.Language == nil || *update.Language != uint8(words.EnglishGB) {
		t.Errorf("Language = %v, want en_GB", update.Language)
	}
}

func TestCapture(t *testing.T) {
	capture, err := NewCapture(t.TempDir())
	if err != nil {
		t.Fatalf("NewCapture() error = %v", err)
	}
	hub := newTestHub(WithCapture(capture))
	conn := dialHub(t, hub)
	readDict(t, conn)

	hub.Update(101, 2, 0)
	readDict(t, conn)

	f, err := os.Open(capture.Path())
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	records, err := ReadCapture(f)
	if err != nil {
		t.Fatalf("ReadCapture() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("captured %d records, want 2", len(records))
	}
	for i, rec := range records {
		if rec.MessageNum != i+1 {
			t.Errorf("record %d MessageNum = %d", i, rec.MessageNum)
		}
		if rec.Direction != DirectionOutbound {
			t.Errorf("record %d Direction = %q", i, rec.Direction)
		}
	}
	if !strings.Contains(records[1].Dict, "GLUCOSE_VALUE=101") {
		t.Errorf("record Dict = %q, want GLUCOSE_VALUE=101", records[1].Dict)
	}
}

func TestNilCapture(t *testing.T) {
	var c *Capture
	c.Record("addr", DirectionInbound, []byte{0})
}

func encodeHex(t *testing.T, d *protocol.Dict) string {
	t.Helper()
	data, err := protocol.Encode(d, 0)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return hex.EncodeToString(data)
}

func TestReadCapture(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty", input: "", want: 0},
		{name: "blank lines skipped", input: "\n{\"message_num\":1}\n\n{\"message_num\":2}\n", want: 2},
		{name: "bad json", input: "{\"message_num\":1}\nnot json\n", want: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ReadCapture(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCapture() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(records) != tt.want {
				t.Errorf("ReadCapture() = %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []CaptureRecord{
		{Direction: DirectionInbound, PayloadHex: encodeHex(t, protocol.NewRequest())},
		{Direction: DirectionOutbound, PayloadHex: encodeHex(t, protocol.NewGlucose(120, 2, 1700000000))},
		{Direction: DirectionOutbound, PayloadHex: encodeHex(t, protocol.NewSettings(true, 1, 3))},
		{Direction: DirectionOutbound, PayloadHex: "zz"},
	}

	got := Summarize(records)
	want := Summary{Total: 4, Inbound: 1, Outbound: 3, Requests: 1, Readings: 1, Settings: 1, Undecoded: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestAnalyze(t *testing.T) {
	rec := CaptureRecord{
		Timestamp:  fixedNow,
		MessageNum: 3,
		RemoteAddr: "192.168.1.20:50000",
		Direction:  DirectionOutbound,
		PayloadHex: encodeHex(t, protocol.NewGlucose(101, 2, 1700000000)),
	}

	var buf bytes.Buffer
	Analyze(&buf, rec)
	out := buf.String()

	for _, want := range []string{"Message #3", DirectionOutbound, "GLUCOSE_VALUE", "101", "TREND_VALUE", "Hex Dump", "0000  "} {
		if !strings.Contains(out, want) {
			t.Errorf("Analyze() output missing %q:\n%s", want, out)
		}
	}
}
