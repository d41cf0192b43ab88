package output

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Finalizer scales the finished framebuffer to a target resolution and
// persists it as a PNG.
type Finalizer struct {
	// ScaleWidth and ScaleHeight are the output resolution. When they match
	// the framebuffer (or are not positive) the image is written as-is.
	ScaleWidth  int
	ScaleHeight int
}

// Finalize upscales img to the target resolution. Scaling is strictly
// nearest-neighbor: the raster is point data, and any interpolating kernel
// would smear single-pixel events into unreadable gradients.
func (f *Finalizer) Finalize(img *image.RGBA) *image.RGBA {
	if f.ScaleWidth <= 0 || f.ScaleHeight <= 0 {
		return img
	}
	if b := img.Bounds(); b.Dx() == f.ScaleWidth && b.Dy() == f.ScaleHeight {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.ScaleWidth, f.ScaleHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Save finalizes img and writes it to path as a PNG. Persistence failures
// are returned to the caller; there is no recovery from a broken sink.
func (f *Finalizer) Save(img *image.RGBA, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(out, f.Finalize(img)); err != nil {
		_ = out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
