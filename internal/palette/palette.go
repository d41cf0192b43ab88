// Package palette provides the 16-entry channel color table.
//
// Channels index directly into the palette, so it always holds exactly
// Size colors. The default table covers the 16 MIDI channels with greys,
// greens, blues, warm tones and magentas; an alternative table can be
// loaded from a GIMP .gpl palette file. All colors are fully opaque.
package palette

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// Size is the number of palette entries, one per channel.
const Size = 16

// Palette maps a channel number to its color.
type Palette [Size]color.RGBA

// Default returns the built-in channel palette.
func Default() Palette {
	return Palette{
		{0xaa, 0xaa, 0xaa, 0xff},
		{0x00, 0x55, 0x00, 0xff},
		{0x00, 0xaa, 0x00, 0xff},
		{0x00, 0xff, 0x00, 0xff},
		{0x00, 0x00, 0xff, 0xff},
		{0x00, 0x55, 0xff, 0xff},
		{0x00, 0xaa, 0xff, 0xff},
		{0x00, 0xff, 0xff, 0xff},
		{0xff, 0x00, 0x00, 0xff},
		{0xff, 0x55, 0x00, 0xff},
		{0xff, 0xaa, 0x00, 0xff},
		{0xff, 0xff, 0x00, 0xff},
		{0xff, 0x00, 0xff, 0xff},
		{0xff, 0x55, 0xff, 0xff},
		{0xff, 0xaa, 0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}
}

// Color returns the palette entry for channel. Channels outside the table
// are an error, not a clamp: a mislabeled channel should not be silently
// recolored.
func (p Palette) Color(channel uint8) (color.RGBA, error) {
	if int(channel) >= Size {
		return color.RGBA{}, fmt.Errorf("channel %d outside palette range 0-%d", channel, Size-1)
	}
	return p[channel], nil
}

// LoadGPL reads a palette from a GIMP .gpl file. The first Size color rows
// become the channel palette (extra rows are ignored); fewer than Size rows
// or a row that is not a color is an error. Alpha is forced opaque.
func LoadGPL(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, err
	}
	defer f.Close()

	var (
		p Palette
		n int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && n < Size {
		line := strings.TrimSpace(scanner.Text())

		// Skip the magic, metadata headers and comments.
		if line == "" || line[0] == '#' ||
			strings.HasPrefix(line, "GIMP") ||
			strings.HasPrefix(line, "Name:") ||
			strings.HasPrefix(line, "Columns:") {
			continue
		}

		// Color rows are "R G B [name]". Anything else at this point is a
		// broken palette; skipping it would silently shift every channel
		// onto its neighbor's color.
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Palette{}, fmt.Errorf("palette %s: bad color row %q", path, line)
		}
		r, err1 := strconv.ParseUint(fields[0], 10, 8)
		g, err2 := strconv.ParseUint(fields[1], 10, 8)
		b, err3 := strconv.ParseUint(fields[2], 10, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return Palette{}, fmt.Errorf("palette %s: bad color row %q", path, line)
		}

		p[n] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
		n++
	}

	if err := scanner.Err(); err != nil {
		return Palette{}, fmt.Errorf("reading palette %s: %w", path, err)
	}
	if n < Size {
		return Palette{}, fmt.Errorf("palette %s has %d colors, need %d", path, n, Size)
	}

	return p, nil
}
