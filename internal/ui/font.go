// Package ui implements the desktop chess board using Ebitengine.
package ui

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldFace      *text.GoTextFace
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 18.0
	coordFontSize   = 11.0
)

func init() {
	initFonts()
}

func initFonts() {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
		return
	}
	regularSource = src

	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
		return
	}
	boldFace = &text.GoTextFace{Source: bold, Size: titleFontSize}
}

// regularFace returns the regular font at size, or nil when it failed to load.
func regularFace(size float64) *text.GoTextFace {
	if regularSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSource, Size: size}
}

// titleFace returns the bold heading font.
func titleFace() *text.GoTextFace {
	return boldFace
}

// measureText returns the width and height of s.
func measureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
