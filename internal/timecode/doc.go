// Package timecode converts between SMPTE-style timecode text and integer
// frame numbers at a fixed frame rate.
//
// A Timecode is inclusive at the in point of an interval and exclusive at
// the out point: the frame duration of an edit is out.Frame() - in.Frame(),
// and the inclusive cut-out frame is in.Frame() + duration - 1. All
// arithmetic downstream of parsing happens on plain integer frames; this
// package is the only place timecode text is interpreted.
//
// Drop-frame timecode is not supported. Parsing a drop-frame value returns
// ErrDropFrame so callers can report the EDL as unusable rather than
// silently producing wrong frame numbers.
package timecode
