package palette

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Opaque(t *testing.T) {
	p := Default()
	for i, c := range p {
		assert.EqualValues(t, 0xff, c.A, "entry %d must be opaque", i)
	}
}

func TestColor(t *testing.T) {
	p := Default()

	c, err := p.Color(0)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xaa, 0xaa, 0xaa, 0xff}, c)

	c, err = p.Color(15)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)
}

func TestColor_OutOfRange(t *testing.T) {
	p := Default()

	_, err := p.Color(16)
	assert.Error(t, err)

	_, err = p.Color(255)
	assert.Error(t, err)
}

func writeTempGPL(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gpl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadGPL(t *testing.T) {
	// 18 color rows: two more than the palette holds.
	var rows strings.Builder
	for i := 0; i < 18; i++ {
		fmt.Fprintf(&rows, "%d 20 30 ColorName\n", i)
	}
	body := "GIMP Palette\nName: Test\nColumns: 4\n# comment\n" + rows.String()

	p, err := LoadGPL(writeTempGPL(t, body))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 20, 30, 0xff}, p[0])
	assert.Equal(t, color.RGBA{15, 20, 30, 0xff}, p[Size-1], "rows past the table size are ignored")
}

func TestLoadGPL_TooFewColors(t *testing.T) {
	body := "GIMP Palette\nName: Short\n0 0 0\n255 255 255\n"

	_, err := LoadGPL(writeTempGPL(t, body))
	assert.Error(t, err)
}

func TestLoadGPL_BadColorRow(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"component overflow", "300 0 0 TooRed"},
		{"non-numeric component", "12 ab 34 Typo"},
		{"too few fields", "12 34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := "GIMP Palette\nName: Broken\n" + tt.row + "\n" +
				strings.Repeat("10 20 30 Filler\n", Size)

			_, err := LoadGPL(writeTempGPL(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad color row")
		})
	}
}

func TestLoadGPL_MissingFile(t *testing.T) {
	_, err := LoadGPL(filepath.Join(t.TempDir(), "nope.gpl"))
	assert.Error(t, err)
}
