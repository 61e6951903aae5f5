package draw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the text size in points used when a Font has no size set.
const DefaultFontSize = 12

var (
	defaultFont     *truetype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// DefaultFont returns the embedded Go Regular font.
func DefaultFont() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = freetype.ParseFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Font describes how Text renders glyphs.
type Font struct {
	// Face is the TrueType font, nil selects [DefaultFont].
	Face *truetype.Font

	// Size in points, at 72 DPI points equal pixels.
	Size float64
}

// Text draws s with its baseline starting at pt, and returns the point where
// the next glyph would go. Glyphs are clipped to the bounds of dst.
func Text(dst Image, pt image.Point, s string, font Font, c color.Color) (image.Point, error) {
	face := font.Face
	if face == nil {
		var err error
		if face, err = DefaultFont(); err != nil {
			return pt, err
		}
	}
	size := font.Size
	if size <= 0 {
		size = DefaultFontSize
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(face)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	next, err := ctx.DrawString(s, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return pt, err
	}
	return image.Pt(next.X.Round(), next.Y.Round()), nil
}
