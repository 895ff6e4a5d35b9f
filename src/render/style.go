package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var (
	colorBackground = drawing.ColorFromHex("f8f9fa")
	colorGrid       = drawing.ColorFromHex("e1e4e8")
	colorAxis       = drawing.ColorFromHex("444444")
	colorMeanLine   = drawing.ColorFromHex("666666").WithAlpha(102)
	colorFallback   = drawing.ColorFromHex("3498db").WithAlpha(153)
	colorLabel      = drawing.ColorFromHex("111111")
	colorTitle      = drawing.ColorFromHex("222222")
	colorSubtitle   = drawing.ColorFromHex("777777")
)

const (
	axisFontSize  = 10.0
	nameFontSize  = 12.0
	labelFontSize = 11.0
	titleFontSize = 20.0
	subFontSize   = 13.0

	fallbackDotWidth = 6.0
)

// pointStyle draws dots only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    fallbackDotWidth,
		DotColor:    col,
	}
}

func meanLineStyle() chart.Style {
	return chart.Style{
		StrokeColor:     colorMeanLine,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{6, 4},
	}
}

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: colorGrid, StrokeWidth: 1}
}

type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
	// Title, subtitle and point labels are drawn after the chart library is
	// done, with x/image faces.
	overlayBold    *sfnt.Font
	overlayRegular *sfnt.Font
}

var (
	fontsOnce sync.Once
	fontSet   fonts
	fontErr   error
)

func loadFonts() (fonts, error) {
	fontsOnce.Do(func() {
		var f fonts
		if f.regular, fontErr = truetype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		if f.bold, fontErr = truetype.Parse(gobold.TTF); fontErr != nil {
			return
		}
		if f.overlayBold, fontErr = opentype.Parse(gobold.TTF); fontErr != nil {
			return
		}
		if f.overlayRegular, fontErr = opentype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		fontSet = f
	})
	if fontErr != nil {
		return fonts{}, fmt.Errorf("load fonts: %w", fontErr)
	}
	return fontSet, nil
}

func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func axisStyle() chart.Style {
	return chart.Style{
		StrokeColor: colorAxis,
		StrokeWidth: 1,
		FontColor:   colorAxis,
		FontSize:    axisFontSize,
	}
}

func axisNameStyle(f fonts) chart.Style {
	return chart.Style{
		Font:      f.bold,
		FontColor: colorAxis,
		FontSize:  nameFontSize,
	}
}
