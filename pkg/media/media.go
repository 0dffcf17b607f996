// Package media describes loaded media sources and their tracks.
package media

import (
	"fmt"
	"time"
)

// Kind is the media type carried by a track.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether either side is unset.
func (d Dimension) IsZero() bool {
	return d.Width <= 0 || d.Height <= 0
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Track is a single timed channel inside a source file.
type Track struct {
	ID       int           `json:"id"`
	Kind     Kind          `json:"kind"`
	Index    int           `json:"index"` // Position among tracks of the same kind
	Codec    string        `json:"codec,omitempty"`
	Duration time.Duration `json:"duration"`

	// Natural pixel size (video only)
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// NaturalSize returns the track's pixel dimensions.
func (t Track) NaturalSize() Dimension {
	return Dimension{Width: t.Width, Height: t.Height}
}

// Source is a decodable media file. It is read-only once loaded.
type Source struct {
	Path     string        `json:"path"`
	Duration time.Duration `json:"duration"`
	Tracks   []Track       `json:"tracks"`
}

// FirstTrack returns the first track of the given kind.
func (s *Source) FirstTrack(kind Kind) (*Track, bool) {
	for i := range s.Tracks {
		if s.Tracks[i].Kind == kind {
			return &s.Tracks[i], true
		}
	}
	return nil, false
}

// TracksOf returns all tracks of the given kind in file order.
func (s *Source) TracksOf(kind Kind) []Track {
	var tracks []Track
	for _, t := range s.Tracks {
		if t.Kind == kind {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

// TimeRange is the half-open interval [Start, Start+Duration).
type TimeRange struct {
	Start    time.Duration `json:"start"`
	Duration time.Duration `json:"duration"`
}

// NewTimeRange creates a TimeRange.
func NewTimeRange(start, duration time.Duration) TimeRange {
	return TimeRange{Start: start, Duration: duration}
}

// End returns the exclusive end of the range.
func (r TimeRange) End() time.Duration {
	return r.Start + r.Duration
}

// Contains reports whether t lies inside [Start, End).
func (r TimeRange) Contains(t time.Duration) bool {
	return t >= r.Start && t < r.End()
}

// IsEmpty reports whether the range covers no time.
func (r TimeRange) IsEmpty() bool {
	return r.Duration <= 0
}

// Equal reports whether both ranges have the same start and duration.
func (r TimeRange) Equal(o TimeRange) bool {
	return r.Start == o.Start && r.Duration == o.Duration
}

// Overlaps reports whether two ranges share any instant.
func (r TimeRange) Overlaps(o TimeRange) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Start < o.End() && o.Start < r.End()
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End())
}
