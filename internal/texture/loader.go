package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/webp"
)

// maxTextureEdge caps decoded photos; anything larger is resampled down so
// a handful of camera originals cannot blow the texture budget.
const maxTextureEdge = 1024

// syntheticScheme marks URLs whose pixels are generated rather than read
// from disk. The simulator feeds these so it needs no photo library.
const syntheticScheme = "proc://"

// DecodePhoto loads the image behind a photo URL: a local file in any
// registered format, or a synthesized image for proc:// URLs.
func DecodePhoto(url string) (*Texture, error) {
	if strings.HasPrefix(url, syntheticScheme) {
		return decodeSynthetic(url)
	}

	raw, err := os.ReadFile(url)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", url, err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", url, err)
	}

	b := img.Bounds()
	var nrgba *image.NRGBA
	if b.Dx() > maxTextureEdge || b.Dy() > maxTextureEdge {
		nrgba = imaging.Fit(img, maxTextureEdge, maxTextureEdge, imaging.Lanczos)
	} else {
		nrgba = imaging.Clone(img)
	}

	return &Texture{Key: url, Image: nrgba, Aspect: aspectOf(nrgba)}, nil
}

// decodeSynthetic renders a proc://photo/<seed>[?aspect=N] URL. Unknown
// proc URLs are an error like any other bad URL; the slot keeps its
// placeholder.
func decodeSynthetic(url string) (*Texture, error) {
	rest := strings.TrimPrefix(url, syntheticScheme)
	path, query, _ := strings.Cut(rest, "?")
	if !strings.HasPrefix(path, "photo/") {
		return nil, fmt.Errorf("texture: unknown synthetic url %s", url)
	}
	seed, err := strconv.ParseUint(strings.TrimPrefix(path, "photo/"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("texture: bad synthetic seed in %s: %w", url, err)
	}

	aspect := 1.0
	if v, ok := strings.CutPrefix(query, "aspect="); ok {
		if a, err := strconv.ParseFloat(v, 64); err == nil && a > 0 {
			aspect = a
		}
	}

	img := SyntheticPhoto(seed, 256, aspect)
	return &Texture{Key: url, Image: img, Aspect: aspectOf(img)}, nil
}
