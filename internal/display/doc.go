// Package display holds the rows of the face and their transitions.
//
// # Slots
//
// Each row is a Slot with two buffers. One buffer is on screen, the other is
// off canvas to the right and free for the next text. A slot never hands its
// buffers out; callers read copies through Front, Back and Buffers.
//
// # Transitions
//
// Transitioner.UpdateLine writes the new text into the off-screen buffer and
// schedules two animations:
//
//	out: on-screen buffer    0 -> -144  ease-in   starts at delay
//	in:  off-screen buffer 144 ->    0  ease-out  starts at delay + 100ms
//
// When the incoming animation stops the buffers swap roles and the retired
// one is parked at x=144. A newer UpdateLine settles an unfinished
// transition first, and callbacks from superseded animations are ignored.
//
// # Geometry
//
// Rows are 37 units apart and 50 units tall on a 144x168 canvas. RowOrigins
// centers the active rows between the top and bottom status bars.
package display
