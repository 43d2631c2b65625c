// Package face is the word clock face.
//
// A Face spells the time (or, after a tap, the date) over four rows and
// keeps two status bars: the clock and link indicator on top, the date and
// latest glucose reading at the bottom.
//
// Every minute tick and every tap asks the word source for a phrase, wraps
// it into rows and animates only the rows whose text changed, each one a
// stagger after the previous. When the number of rows changes all rows are
// animated so they can move to their new vertical position. The date stays
// up for two ticks before the face returns to the time.
//
// The face is not safe for concurrent use. The terminal program calls it
// from its update loop only.
package face
