package diagram

import (
	"errors"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	// Parsed font sources; faces are created per size.
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

var errNoFont = errors.New("diagram fonts not loaded")

func init() {
	initFonts()
}

func initFonts() {
	var err error
	regularFont, err = opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	boldFont, err = opentype.Parse(gobold.TTF)
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// newFace returns a face of f at size pixels.
func newFace(f *opentype.Font, size float64) (font.Face, error) {
	if f == nil {
		return nil, errNoFont
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
