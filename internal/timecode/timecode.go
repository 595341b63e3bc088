package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalid indicates malformed timecode text or a frame field exceeding
// the maximum for the frame rate.
var ErrInvalid = errors.New("invalid timecode")

// ErrDropFrame indicates drop-frame timecode, which this tool does not handle.
var ErrDropFrame = errors.New("drop frame timecode is not supported")

// ErrBadFrameRate indicates a frame rate that cannot drive frame arithmetic.
var ErrBadFrameRate = errors.New("bad frame rate")

var timecodeRE = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})([:;,])(\d{2,3})$`)

// Timecode is a frame-rate-qualified instant. Equality and ordering are
// defined by Frame at the carried rate; two timecodes at different rates
// never compare equal.
type Timecode struct {
	hours   int
	minutes int
	seconds int
	frames  int
	fps     int
}

// Parse interprets "HH:MM:SS:FF" text at the given frame rate. Fractional
// rates are rounded to the nearest integer for frame math, matching how
// non-drop EDLs count frames at 23.976 or 29.97.
func Parse(text string, fps float64) (Timecode, error) {
	rate, err := normalizeRate(fps)
	if err != nil {
		return Timecode{}, err
	}
	m := timecodeRE.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Timecode{}, fmt.Errorf("%w: %q", ErrInvalid, text)
	}
	if m[4] != ":" {
		return Timecode{}, fmt.Errorf("%w: %q", ErrDropFrame, text)
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	ss, _ := strconv.Atoi(m[3])
	ff, _ := strconv.Atoi(m[5])
	if mm > 59 || ss > 59 {
		return Timecode{}, fmt.Errorf("%w: %q", ErrInvalid, text)
	}
	if ff >= rate {
		return Timecode{}, fmt.Errorf("%w: frame %d out of range for %d fps in %q", ErrInvalid, ff, rate, text)
	}
	return Timecode{hours: hh, minutes: mm, seconds: ss, frames: ff, fps: rate}, nil
}

// FromFrame converts an absolute frame number back to a timecode at the
// given frame rate. Round-trips exactly with Frame for valid inputs.
func FromFrame(frame int, fps float64) (Timecode, error) {
	rate, err := normalizeRate(fps)
	if err != nil {
		return Timecode{}, err
	}
	if frame < 0 {
		return Timecode{}, fmt.Errorf("%w: negative frame %d", ErrInvalid, frame)
	}
	seconds := frame / rate
	ff := frame % rate
	hh := seconds / 3600
	mm := (seconds % 3600) / 60
	ss := seconds % 60
	if hh > 99 {
		return Timecode{}, fmt.Errorf("%w: frame %d exceeds 99 hours at %d fps", ErrInvalid, frame, rate)
	}
	return Timecode{hours: hh, minutes: mm, seconds: ss, frames: ff, fps: rate}, nil
}

func normalizeRate(fps float64) (int, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, fmt.Errorf("%w: %v", ErrBadFrameRate, fps)
	}
	rate := int(math.Round(fps))
	if rate < 1 {
		return 0, fmt.Errorf("%w: %v", ErrBadFrameRate, fps)
	}
	return rate, nil
}

// Frame returns the absolute frame number of this timecode.
func (t Timecode) Frame() int {
	return ((t.hours*60+t.minutes)*60+t.seconds)*t.fps + t.frames
}

// FPS returns the integer frame rate the timecode was parsed at.
func (t Timecode) FPS() int {
	return t.fps
}

// IsZero reports whether the timecode is the zero value (never parsed).
func (t Timecode) IsZero() bool {
	return t.fps == 0
}

// Before reports whether t is strictly earlier than other.
func (t Timecode) Before(other Timecode) bool {
	return t.Frame() < other.Frame()
}

// After reports whether t is strictly later than other.
func (t Timecode) After(other Timecode) bool {
	return t.Frame() > other.Frame()
}

// Sub returns the frame distance t - other.
func (t Timecode) Sub(other Timecode) int {
	return t.Frame() - other.Frame()
}

func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.hours, t.minutes, t.seconds, t.frames)
}
