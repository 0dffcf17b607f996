// Package composition provides the in-memory timeline that the exporter renders.
package composition

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/clipmerge/pkg/media"
)

var (
	// ErrTrackInsertion is returned when a segment cannot be placed on a track.
	ErrTrackInsertion = errors.New("composition: track insertion failed")

	// ErrInconsistentInstruction is returned when an instruction does not match its composition.
	ErrInconsistentInstruction = errors.New("composition: instruction does not match composition")
)

// Composition is a mutable assembly of tracks. It is not itself playable.
type Composition struct {
	Tracks []*Track `json:"tracks"`
	nextID int
}

// New creates an empty Composition.
func New() *Composition {
	return &Composition{nextID: 1}
}

// AddTrack appends an empty track of the given kind.
func (c *Composition) AddTrack(kind media.Kind) *Track {
	if c.nextID == 0 {
		c.nextID = 1
	}
	t := &Track{ID: c.nextID, Kind: kind}
	c.nextID++
	c.Tracks = append(c.Tracks, t)
	return t
}

// TracksOf returns the composition tracks of the given kind in insertion order.
func (c *Composition) TracksOf(kind media.Kind) []*Track {
	var tracks []*Track
	for _, t := range c.Tracks {
		if t.Kind == kind {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// HasTrack reports whether t belongs to the composition.
func (c *Composition) HasTrack(t *Track) bool {
	for _, own := range c.Tracks {
		if own == t {
			return true
		}
	}
	return false
}

// Duration returns the end time of the latest segment on any track.
func (c *Composition) Duration() time.Duration {
	var end time.Duration
	for _, t := range c.Tracks {
		if e := t.TimeRange().End(); e > end {
			end = e
		}
	}
	return end
}

// TimeRange returns [0, Duration()).
func (c *Composition) TimeRange() media.TimeRange {
	return media.NewTimeRange(0, c.Duration())
}

// Sources returns the distinct sources referenced by segments, in first-use order.
func (c *Composition) Sources() []*media.Source {
	var sources []*media.Source
	seen := make(map[*media.Source]bool)
	for _, t := range c.Tracks {
		for _, seg := range t.Segments {
			if !seen[seg.Source] {
				seen[seg.Source] = true
				sources = append(sources, seg.Source)
			}
		}
	}
	return sources
}

// Segment places a range of a source track at a target time.
type Segment struct {
	Source      *media.Source   `json:"-"`
	SourceTrack media.Track     `json:"source_track"`
	SourceRange media.TimeRange `json:"source_range"`
	Target      media.TimeRange `json:"target"`
}

// SourcePath returns the path of the segment's source.
func (s Segment) SourcePath() string {
	if s.Source == nil {
		return ""
	}
	return s.Source.Path
}

// Track is a single-kind channel within the composition.
type Track struct {
	ID       int        `json:"id"`
	Kind     media.Kind `json:"kind"`
	Segments []Segment  `json:"segments"`
}

// TimeRange returns the span from zero to the end of the last segment.
// An empty track has an empty range.
func (t *Track) TimeRange() media.TimeRange {
	if len(t.Segments) == 0 {
		return media.TimeRange{}
	}
	first := t.Segments[0].Target.Start
	last := t.Segments[len(t.Segments)-1].Target.End()
	return media.NewTimeRange(first, last-first)
}

// InsertTimeRange copies sourceRange of sourceTrack into the track at time at.
//
// The source range must lie within the source's own timeline, the track kinds
// must match, and the new segment must start at or after the end of the last
// one. No padding is added when the source is too short.
func (t *Track) InsertTimeRange(sourceRange media.TimeRange, source *media.Source, sourceTrack *media.Track, at time.Duration) error {
	if source == nil || sourceTrack == nil {
		return fmt.Errorf("%w: no %s track to insert", ErrTrackInsertion, t.Kind)
	}
	if sourceTrack.Kind != t.Kind {
		return fmt.Errorf("%w: cannot insert %s track into %s track", ErrTrackInsertion, sourceTrack.Kind, t.Kind)
	}
	if sourceRange.IsEmpty() || sourceRange.Start < 0 {
		return fmt.Errorf("%w: invalid source range %s", ErrTrackInsertion, sourceRange)
	}
	if sourceRange.End() > source.Duration {
		return fmt.Errorf("%w: range %s exceeds %s (duration %s)",
			ErrTrackInsertion, sourceRange, source.Path, source.Duration)
	}
	if at < 0 {
		return fmt.Errorf("%w: negative insertion time %s", ErrTrackInsertion, at)
	}

	target := media.NewTimeRange(at, sourceRange.Duration)
	if n := len(t.Segments); n > 0 {
		if last := t.Segments[n-1].Target; at < last.End() {
			return fmt.Errorf("%w: segment %s overlaps %s", ErrTrackInsertion, target, last)
		}
	}

	t.Segments = append(t.Segments, Segment{
		Source:      source,
		SourceTrack: *sourceTrack,
		SourceRange: sourceRange,
		Target:      target,
	})
	return nil
}
