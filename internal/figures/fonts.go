package figures

import (
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFont = mustParse(goregular.TTF)
	boldFont    = mustParse(gobold.TTF)
)

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic("embedded Go font failed to parse: " + err.Error())
	}
	return f
}

// FontCache hands out faces of the embedded Go fonts, one per point size.
type FontCache struct {
	font  *truetype.Font
	faces map[float64]font.Face
}

func NewFontCache(bold bool) *FontCache {
	f := regularFont
	if bold {
		f = boldFont
	}
	return &FontCache{font: f, faces: make(map[float64]font.Face)}
}

// Face returns a face for size, rounded to half points.
func (c *FontCache) Face(size float64) font.Face {
	size = math.Max(1, math.Round(size*2)/2)
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: size})
	c.faces[size] = face
	return face
}
