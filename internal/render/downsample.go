package render

import (
	"image"

	"golang.org/x/image/draw"
)

// downsample scales a supersampled frame to the target size with CatmullRom
// filtering. Frames are fully opaque, so no premultiplied-alpha pass is
// needed before filtering.
func downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
