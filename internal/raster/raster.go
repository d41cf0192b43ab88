package raster

import (
	"fmt"
	"image"
	"math"

	"noteplot/internal/event"
	"noteplot/internal/palette"
)

// TimeRange is the observed timestamp extent of an event sequence.
type TimeRange struct {
	Min uint64
	Max uint64
}

// Normalize computes the timestamp range over events. The second return
// value is false when there are no events: an empty sequence has no range,
// which callers treat as "no data" rather than as a failure.
func Normalize(events []event.Event) (TimeRange, bool) {
	if len(events) == 0 {
		return TimeRange{}, false
	}

	tr := TimeRange{Min: events[0].Timestamp, Max: events[0].Timestamp}
	for _, ev := range events[1:] {
		if ev.Timestamp < tr.Min {
			tr.Min = ev.Timestamp
		}
		if ev.Timestamp > tr.Max {
			tr.Max = ev.Timestamp
		}
	}
	return tr, true
}

// Column maps a timestamp inside the range to a pixel column in [0, width-1].
// When the range is a single instant every event lands in column 0.
func (tr TimeRange) Column(ts uint64, width int) int {
	if tr.Max == tr.Min {
		return 0
	}
	frac := float64(ts-tr.Min) / float64(tr.Max-tr.Min)
	return int(math.Round(frac * float64(width-1)))
}

// Rasterizer writes events into an RGBA framebuffer it exclusively owns.
// Not safe for concurrent use; the pipeline is strictly sequential.
type Rasterizer struct {
	pal palette.Palette
	img *image.RGBA
}

// New creates a Rasterizer with a width x height framebuffer.
func New(width, height int, pal palette.Palette) *Rasterizer {
	return &Rasterizer{
		pal: pal,
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Render plots every event as one pixel: column from the normalized
// timestamp, row from the note, color from the channel palette. Pixels are
// overwritten unconditionally, so later events win coordinate collisions.
//
// A channel outside the palette or a note row outside the framebuffer
// aborts rendering with an error naming the event; out-of-range fields are
// data corruption, and relocating them would put lies in the plot.
func (r *Rasterizer) Render(events []event.Event, tr TimeRange) error {
	bounds := r.img.Bounds()

	for _, ev := range events {
		c, err := r.pal.Color(ev.Channel)
		if err != nil {
			return fmt.Errorf("event at timestamp %d: %w", ev.Timestamp, err)
		}

		y := int(ev.Note)
		if y >= bounds.Dy() {
			return fmt.Errorf("event at timestamp %d: note %d outside image height %d",
				ev.Timestamp, ev.Note, bounds.Dy())
		}

		x := tr.Column(ev.Timestamp, bounds.Dx())
		r.img.SetRGBA(x, y, c)
	}

	return nil
}

// Image hands the framebuffer to the caller. The Rasterizer keeps no claim
// on it afterwards; finalization owns it from here.
func (r *Rasterizer) Image() *image.RGBA {
	return r.img
}
