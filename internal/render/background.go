package render

import "photo-collage-engine/internal/settings"

// fillBackground paints the clear color. The z-buffer stays at -inf so all
// geometry draws over the backdrop; background pixels skip tone mapping and
// land on screen exactly as configured.
func fillBackground(fb *frameBuffer, bg settings.BackgroundConfig) {
	if bg.Type == settings.BackgroundSolid {
		r, g, b := bg.Color.Clamped().RGB255()
		n := fb.Width * fb.Height
		for i := 0; i < n; i++ {
			o := i * 4
			fb.Color[o] = r
			fb.Color[o+1] = g
			fb.Color[o+2] = b
			fb.Color[o+3] = 255
		}
		return
	}

	// Vertical gradient, blended in Luv like the procedural textures.
	denom := float64(fb.Height - 1)
	if denom < 1 {
		denom = 1
	}
	for y := 0; y < fb.Height; y++ {
		t := float64(y) / denom
		r, g, b := bg.TopColor.BlendLuv(bg.BottomColor, t).Clamped().RGB255()
		off := y * fb.Width * 4
		for x := 0; x < fb.Width; x++ {
			o := off + x*4
			fb.Color[o] = r
			fb.Color[o+1] = g
			fb.Color[o+2] = b
			fb.Color[o+3] = 255
		}
	}
}
