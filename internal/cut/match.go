package cut

import (
	"fmt"

	"cutsync/internal/edl"
	"cutsync/internal/store"
	"cutsync/internal/timecode"
)

const (
	versionMatchBonus = 1000
	softMatchBonus    = 100
)

// CandidatePool holds the prior cut items still available for pairing
// during one reconciliation pass. Each candidate is consumed at most once.
type CandidatePool struct {
	items []*store.CutItem
	fps   float64
}

// NewCandidatePool wraps the prior cut's items. The frame rate is the
// fallback for items persisted without one.
func NewCandidatePool(items []*store.CutItem, fps float64) *CandidatePool {
	pool := &CandidatePool{fps: fps}
	pool.items = append(pool.items, items...)
	return pool
}

// Remaining returns the candidates no BestMatch call has consumed.
func (p *CandidatePool) Remaining() []*store.CutItem { return p.items }

// BestMatch returns the highest-scoring candidate linked to the given shot
// and removes it from the pool, nil when no candidate is linked to the
// shot. A shared version outranks everything else; having no version to
// compare on either side still outranks a mismatch, so an exact identity
// wins before order and timecode equality break the remaining ties. Ties
// keep the first-encountered candidate.
func (p *CandidatePool) BestMatch(shot *store.Shot, version *store.Version, edit *edl.Event) (*store.CutItem, error) {
	if shot == nil {
		return nil, nil
	}
	best := -1
	bestScore := -1
	for i, item := range p.items {
		if item.ShotID == nil || *item.ShotID != shot.ID {
			continue
		}
		score, err := p.score(item, version, edit)
		if err != nil {
			return nil, err
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return nil, nil
	}
	item := p.items[best]
	p.items = append(p.items[:best], p.items[best+1:]...)
	return item, nil
}

func (p *CandidatePool) score(item *store.CutItem, version *store.Version, edit *edl.Event) (int, error) {
	score := 0
	switch {
	case version == nil || item.VersionID == nil:
		score += softMatchBonus
	case version.ID == *item.VersionID:
		score += versionMatchBonus
	}
	if edit == nil {
		return score, nil
	}

	if item.CutOrder != nil && *item.CutOrder == edit.Order {
		score++
	}
	fps := item.FPS
	if fps <= 0 {
		fps = p.fps
	}
	if item.TimecodeIn != "" {
		tc, err := timecode.Parse(item.TimecodeIn, fps)
		if err != nil {
			return 0, fmt.Errorf("cut item %s: timecode in: %w", item.Code, err)
		}
		if tc.Frame() == edit.SourceIn.Frame() {
			score++
		}
	}
	if item.TimecodeOut != "" {
		tc, err := timecode.Parse(item.TimecodeOut, fps)
		if err != nil {
			return 0, fmt.Errorf("cut item %s: timecode out: %w", item.Code, err)
		}
		if tc.Frame() == edit.SourceOut.Frame() {
			score++
		}
	}
	return score, nil
}
