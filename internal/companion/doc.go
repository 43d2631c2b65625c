// Package companion implements the phone-side service that feeds the face.
//
// The companion keeps the latest glucose reading and the face settings, and
// serves faces over a WebSocket carrying binary dictionaries (see package
// protocol). Readings and settings arrive through a small HTTP API.
//
// # Face Protocol
//
//   - On connect the companion sends INVERT, TEXT_ALIGN and LANGUAGE
//   - REQUEST_DATA is answered with GLUCOSE_VALUE, TREND_VALUE and TIMESTAMP
//     when a reading is held, otherwise it is logged and ignored
//   - Every new reading and every settings change is pushed to all faces
//
// # HTTP API
//
//	GET  /glucose    latest reading
//	POST /glucose    {"value": 120, "trend": 2, "timestamp": 1700000000}
//	GET  /settings   current face settings
//	PUT  /settings   {"invert": true, "text_align": "left", "lang": "de"}
//
// A missing trend is stored as -1 and a missing timestamp as now. Unknown
// alignments fall back to center and unknown languages to en_US.
//
// # Usage Example
//
//	hub := companion.NewHub(config.Defaults())
//	srv := companion.New(&companion.Config{
//	    Addr:      ":8080",
//	    Advertise: true,
//	}, hub)
//
//	// Run blocks until ctx is cancelled
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Message Capture
//
// A hub created WithCapture appends every message it sends or receives to
// capture-YYYYMMDD-HHMMSS.jsonl with a hex dump and the decoded dictionary.
// ReadCapture, Summarize and Analyze read such a file back.
package companion
