// Package mp4probe reads track layout and durations from MP4/QuickTime files.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/clipmerge/pkg/media"
	"github.com/user/clipmerge/pkg/ports"
)

var (
	// ErrNoMovie is returned when the file has no moov box.
	ErrNoMovie = errors.New("mp4probe: no movie header")

	// ErrUnknownDuration is returned when no duration can be derived.
	ErrUnknownDuration = errors.New("mp4probe: unknown duration")
)

// Prober implements ports.MediaProber using mp4ff box parsing.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe parses the file at path.
func (p *Prober) Probe(ctx context.Context, path string) (*media.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	src, err := p.ProbeReader(f)
	if err != nil {
		return nil, err
	}
	src.Path = path
	return src, nil
}

// ProbeReader parses an MP4 stream.
func (p *Prober) ProbeReader(reader io.ReadSeeker) (*media.Source, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	if mp4File.IsFragmented() {
		return probeFragmented(mp4File)
	}
	return probeProgressive(mp4File)
}

func probeProgressive(f *mp4.File) (*media.Source, error) {
	moov := f.Moov
	if moov == nil || moov.Mvhd == nil {
		return nil, ErrNoMovie
	}

	src := &media.Source{
		Duration: scaled(moov.Mvhd.Duration, moov.Mvhd.Timescale),
		Tracks:   collectTracks(moov.Traks, nil),
	}
	if src.Duration == 0 {
		src.Duration = longestTrack(src.Tracks)
	}
	if src.Duration == 0 {
		return nil, ErrUnknownDuration
	}
	return src, nil
}

func probeFragmented(f *mp4.File) (*media.Source, error) {
	if f.Init == nil || f.Init.Moov == nil {
		return nil, ErrNoMovie
	}
	moov := f.Init.Moov

	// Sum sample durations per track across all fragments.
	fragmentTotals := make(map[uint32]uint64)
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			// GetFullSamples only reads the first traf.
			if len(frag.Moof.Trafs) != 1 {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				trackID := traf.Tfhd.TrackID
				samples, err := frag.GetFullSamples(findTrex(moov, trackID))
				if err != nil {
					return nil, fmt.Errorf("get samples: %w", err)
				}
				for _, s := range samples {
					fragmentTotals[trackID] += uint64(s.Dur)
				}
			}
		}
	}

	src := &media.Source{Tracks: collectTracks(moov.Traks, fragmentTotals)}

	if moov.Mvex != nil && moov.Mvex.Mehd != nil && moov.Mvhd != nil {
		src.Duration = scaled(uint64(moov.Mvex.Mehd.FragmentDuration), moov.Mvhd.Timescale)
	}
	if src.Duration == 0 {
		src.Duration = longestTrack(src.Tracks)
	}
	if src.Duration == 0 {
		return nil, ErrUnknownDuration
	}
	return src, nil
}

func collectTracks(traks []*mp4.TrakBox, fragmentTotals map[uint32]uint64) []media.Track {
	var tracks []media.Track
	counts := make(map[media.Kind]int)

	for _, trak := range traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Tkhd == nil {
			continue
		}

		var kind media.Kind
		switch trak.Mdia.Hdlr.HandlerType {
		case "vide":
			kind = media.KindVideo
		case "soun":
			kind = media.KindAudio
		default:
			continue
		}

		track := media.Track{
			ID:    int(trak.Tkhd.TrackID),
			Kind:  kind,
			Index: counts[kind],
			Codec: sampleEntryType(trak),
		}
		counts[kind]++

		if mdhd := trak.Mdia.Mdhd; mdhd != nil {
			units := mdhd.Duration
			if total, ok := fragmentTotals[trak.Tkhd.TrackID]; ok && units == 0 {
				units = total
			}
			track.Duration = scaled(units, mdhd.Timescale)
		}

		if kind == media.KindVideo {
			track.Width = int(trak.Tkhd.Width >> 16)
			track.Height = int(trak.Tkhd.Height >> 16)
			if track.Width == 0 || track.Height == 0 {
				if vse := visualSampleEntry(trak); vse != nil {
					track.Width = int(vse.Width)
					track.Height = int(vse.Height)
				}
			}
		}

		tracks = append(tracks, track)
	}
	return tracks
}

func sampleEntryType(trak *mp4.TrakBox) string {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ""
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		return child.Type()
	}
	return ""
}

func visualSampleEntry(trak *mp4.TrakBox) *mp4.VisualSampleEntryBox {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return nil
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return vse
		}
	}
	return nil
}

func findTrex(moov *mp4.MoovBox, trackID uint32) *mp4.TrexBox {
	if moov.Mvex == nil {
		return nil
	}
	for _, t := range moov.Mvex.Trexs {
		if t.TrackID == trackID {
			return t
		}
	}
	return nil
}

func longestTrack(tracks []media.Track) time.Duration {
	var longest time.Duration
	for _, t := range tracks {
		if t.Duration > longest {
			longest = t.Duration
		}
	}
	return longest
}

// scaled converts a duration in timescale units without overflowing.
func scaled(units uint64, timescale uint32) time.Duration {
	if timescale == 0 {
		return 0
	}
	ts := uint64(timescale)
	whole := units / ts
	rem := units % ts
	return time.Duration(whole)*time.Second + time.Duration(rem*uint64(time.Second)/ts)
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
