package edl

import (
	"errors"
	"strings"
	"testing"

	"cutsync/internal/timecode"
)

const sampleEDL = `TITLE: CUTSYNC_TEST_CUT
FCM: NON-DROP FRAME

001  REEL1 V     C        00:00:41:16 00:00:42:08 01:00:00:00 01:00:00:16
* COMMENT: SH010
* FROM CLIP NAME: sh010_comp_v002.mov

002  REEL2 V     C        00:00:10:00 00:00:11:00 01:00:00:16 01:00:01:16
* SH020

003  REEL1 V     C        00:01:00:00 00:01:02:00 01:00:01:16 01:00:03:16
* FROM CLIP NAME: sh030_anim_v005.mov
`

func TestParse(t *testing.T) {
	list, err := Parse(strings.NewReader(sampleEDL), 24)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if list.Title != "CUTSYNC_TEST_CUT" {
		t.Errorf("title = %q, want CUTSYNC_TEST_CUT", list.Title)
	}
	if len(list.Events) != 3 {
		t.Fatalf("parsed %d events, want 3", len(list.Events))
	}

	first := list.Events[0]
	if first.Order != 1 {
		t.Errorf("first event order = %d, want 1", first.Order)
	}
	if first.ShotName != "SH010" {
		t.Errorf("first event shot name = %q, want SH010", first.ShotName)
	}
	if first.ClipName != "sh010_comp_v002.mov" {
		t.Errorf("first event clip name = %q", first.ClipName)
	}
	if got := first.VersionName(); got != "sh010_comp_v002" {
		t.Errorf("first event version name = %q, want sh010_comp_v002", got)
	}
	if got := first.SourceIn.String(); got != "00:00:41:16" {
		t.Errorf("first event source in = %q", got)
	}
	if got := first.SourceDuration(); got != 16 {
		t.Errorf("first event source duration = %d, want 16", got)
	}

	second := list.Events[1]
	if second.ShotName != "SH020" {
		t.Errorf("second event shot name = %q, want SH020", second.ShotName)
	}
	if second.ClipName != "" {
		t.Errorf("second event clip name = %q, want empty", second.ClipName)
	}

	third := list.Events[2]
	if third.ShotName != "" {
		t.Errorf("third event shot name = %q, want empty", third.ShotName)
	}
	if got := third.VersionName(); got != "sh030_anim_v005" {
		t.Errorf("third event version name = %q", got)
	}
}

func TestParsePrefersCommentShotName(t *testing.T) {
	input := `001  REEL1 V     C        00:00:00:00 00:00:01:00 01:00:00:00 01:00:01:00
* SH_WRONG
* COMMENT: SH_RIGHT
`
	list, err := Parse(strings.NewReader(input), 24)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := list.Events[0].ShotName; got != "SH_RIGHT" {
		t.Errorf("shot name = %q, want SH_RIGHT", got)
	}
}

func TestParseRejectsDropFrame(t *testing.T) {
	input := "FCM: DROP FRAME\n"
	if _, err := Parse(strings.NewReader(input), 24); !errors.Is(err, timecode.ErrDropFrame) {
		t.Fatalf("Parse error = %v, want ErrDropFrame", err)
	}
}

func TestParseRejectsUnnamedEvent(t *testing.T) {
	input := `001  REEL1 V     C        00:00:00:00 00:00:01:00 01:00:00:00 01:00:01:00
* this comment names nothing usable because of the spaces
`
	if _, err := Parse(strings.NewReader(input), 24); !errors.Is(err, ErrNoIdentifier) {
		t.Fatalf("Parse error = %v, want ErrNoIdentifier", err)
	}
}

func TestParseReelNameDeduplication(t *testing.T) {
	input := `001  REELA V     C        00:00:00:00 00:00:01:00 01:00:00:00 01:00:01:00
* SH010
002  REELB V     C        00:00:00:00 00:00:01:00 01:00:01:00 01:00:02:00
* SH020
003  REELA V     C        00:00:02:00 00:00:03:00 01:00:02:00 01:00:03:00
* SH030
`
	list, err := Parse(strings.NewReader(input), 24)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := []string{"REELA001", "REELB", "REELA002"}
	for i, event := range list.Events {
		if event.ReelName != want[i] {
			t.Errorf("event %d reel name = %q, want %q", i+1, event.ReelName, want[i])
		}
	}
}

func TestParseSkipsDirectiveLines(t *testing.T) {
	input := `TITLE: X
001  REEL1 V     C        00:00:00:00 00:00:01:00 01:00:00:00 01:00:01:00
M2   REEL1        048.0     00:00:00:00
* SH010
002  AX   V     D    024  00:00:00:00 00:00:01:00 01:00:01:00 01:00:02:00
* SH020
`
	list, err := Parse(strings.NewReader(input), 24)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(list.Events) != 2 {
		t.Fatalf("parsed %d events, want 2", len(list.Events))
	}
	if list.Events[1].Reel != "AX" {
		t.Errorf("second event reel = %q, want AX", list.Events[1].Reel)
	}
}
