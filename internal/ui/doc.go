// Package ui hosts the watch face in the terminal.
//
// This package uses Bubble Tea and Lipgloss to draw the face and to run its
// event loop. The Bubble Tea update loop is the only place the face, the
// glucose cache and the request throttler are touched.
//
// # Events
//
//   - minute tick: aligned to the wall clock, advances the face and asks the
//     requester whether to fetch a reading
//   - key press: tap (space/t) toggles time and date, q quits, and in debug
//     mode up/down move the displayed time by five minutes
//   - frame: about 30 per second while row transitions are running
//   - posted functions: transport callbacks delivered through Poster
//
// # Drawing
//
// The face canvas is mapped onto a FaceColumns wide grid. Both buffers of a
// row are drawn where they currently sit, so a transition shows the old text
// leaving to the left while the new text enters from the right. Invert swaps
// the foreground and background colors and alignment places rows against
// the left edge, the center or the right edge.
//
// # Logging Integration
//
// The renderer owns the terminal, so the face logs to a file. Logging is
// controlled via the TEXTWATCH_LOG_LEVEL environment variable or the
// --log-level flag. When unset, zap logging is silent.
//
// Example:
//
//	model := ui.NewModel(f, service, ui.WithDebug(debug))
//	program := ui.NewProgram(model)
//	client := transport.NewClient(url, chain, transport.WithPoster(ui.Poster(program)))
//	go client.Run(ctx)
//	_, err := program.Run()
package ui
