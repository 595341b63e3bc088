package timecode_test

import (
	"errors"
	"testing"

	"cutsync/internal/timecode"
)

func TestParseAndFrame(t *testing.T) {
	cases := []struct {
		text  string
		fps   float64
		frame int
	}{
		{"00:00:00:00", 24, 0},
		{"00:00:01:00", 24, 24},
		{"00:00:00:23", 24, 23},
		{"01:00:00:00", 24, 86400},
		{"01:00:00:12", 24, 86412},
		{"00:01:00:00", 30, 1800},
		{"01:02:03:04", 24, (3600 + 123)*24 + 4},
		// 23.976 rounds to 24 for non-drop frame counting.
		{"00:00:01:00", 23.976, 24},
	}
	for _, tc := range cases {
		parsed, err := timecode.Parse(tc.text, tc.fps)
		if err != nil {
			t.Fatalf("Parse(%q, %v) failed: %v", tc.text, tc.fps, err)
		}
		if got := parsed.Frame(); got != tc.frame {
			t.Errorf("Parse(%q, %v).Frame() = %d, want %d", tc.text, tc.fps, got, tc.frame)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, frame := range []int{0, 1, 23, 24, 86399, 86400, 123456} {
		tc, err := timecode.FromFrame(frame, 24)
		if err != nil {
			t.Fatalf("FromFrame(%d) failed: %v", frame, err)
		}
		if tc.Frame() != frame {
			t.Errorf("FromFrame(%d).Frame() = %d", frame, tc.Frame())
		}
		reparsed, err := timecode.Parse(tc.String(), 24)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.String(), err)
		}
		if reparsed.Frame() != frame {
			t.Errorf("round trip through %q lost frames: got %d, want %d", tc.String(), reparsed.Frame(), frame)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		fps  float64
		want error
	}{
		{"malformed", "not a timecode", 24, timecode.ErrInvalid},
		{"missing field", "00:00:00", 24, timecode.ErrInvalid},
		{"frames exceed rate", "00:00:00:24", 24, timecode.ErrInvalid},
		{"minutes out of range", "00:61:00:00", 24, timecode.ErrInvalid},
		{"drop frame semicolon", "00:00:00;00", 30, timecode.ErrDropFrame},
		{"drop frame comma", "00:00:00,00", 30, timecode.ErrDropFrame},
		{"zero rate", "00:00:00:00", 0, timecode.ErrBadFrameRate},
		{"negative rate", "00:00:00:00", -24, timecode.ErrBadFrameRate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := timecode.Parse(tc.text, tc.fps); !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q, %v) = %v, want %v", tc.text, tc.fps, err, tc.want)
			}
		})
	}
}

func TestOrderingAndSub(t *testing.T) {
	a, err := timecode.Parse("01:00:00:00", 24)
	if err != nil {
		t.Fatal(err)
	}
	b, err := timecode.Parse("01:00:00:05", 24)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %s < %s", a, b)
	}
	if !b.After(a) {
		t.Fatalf("expected %s > %s", b, a)
	}
	if got := b.Sub(a); got != 5 {
		t.Fatalf("Sub = %d, want 5", got)
	}
}
