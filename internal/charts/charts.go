// Package charts renders aggregated tracker rows into PNG images. It is a
// pure presentation layer: rows in, image bytes out, no storage access.
package charts

import (
	"bytes"
	"image/color"
	"log"
	"math"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	chartWidth  = 800
	chartHeight = 600

	marginLeft   = 150
	marginRight  = 40
	marginTop    = 60
	marginBottom = 60
)

func newContext() *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	if face := chartFace(); face != nil {
		dc.SetFontFace(face)
	}
	return dc
}

var (
	faceOnce   sync.Once
	loadedFace font.Face
)

// chartFace loads an optional TTF named by CHART_FONT. Without one the gg
// default bitmap face is used, which keeps the renderer dependency-free of
// any font files on disk.
func chartFace() font.Face {
	faceOnce.Do(func() {
		path := os.Getenv("CHART_FONT")
		if path == "" {
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Charts: could not read font %s: %v", path, err)
			return
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			log.Printf("Charts: could not parse font %s: %v", path, err)
			return
		}
		loadedFace = truetype.NewFace(parsed, &truetype.Options{Size: 14})
	})
	return loadedFace
}

// tickInterval spaces axis ticks in steps of 5 scaled to the data range,
// never below 1.
func tickInterval(maxValue int) int {
	step := 5 * int(math.Round(float64(maxValue)/25.0))
	if step < 1 {
		step = 1
	}
	return step
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setColor(dc *gg.Context, c color.NRGBA) {
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}
