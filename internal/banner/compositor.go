// Package banner renders exhibitor marketing banners as PNG images.
package banner

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	_ "image/gif"
	_ "image/jpeg"
)

// Canvas dimensions and layout, matching the published banner format.
const (
	Width  = 800
	Height = 400

	centerX = Width / 2
	centerY = Height / 2

	logoBoxSize  = 80
	platePadding = 10

	eventNameY   = 80
	featuringY   = 120
	companyNameY = 280
	boothInfoY   = 320
)

var (
	gradientStart = color.NRGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF} // blue
	gradientEnd   = color.NRGBA{R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF} // purple
	plateWhite    = color.NRGBA{R: 255, G: 255, B: 255, A: 230}
	textWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	textDimWhite  = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
)

// Input is the exhibitor snapshot a banner is rendered from. Logo is the raw
// uploaded image bytes; nil or undecodable bytes fall back to the company
// initial glyph.
type Input struct {
	CompanyName string
	BoothNumber string
	BoothSize   string
	EventName   string
	Logo        []byte
}

type faceSet struct {
	eventName   font.Face
	featuring   font.Face
	companyName font.Face
	boothInfo   font.Face
	initial     font.Face
}

var (
	facesOnce sync.Once
	faces     faceSet
	facesErr  error
)

func loadFaces() (faceSet, error) {
	facesOnce.Do(func() {
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			facesErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		newFace := func(f *opentype.Font, size float64) (font.Face, error) {
			return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		}
		if faces.eventName, facesErr = newFace(bold, 32); facesErr != nil {
			return
		}
		if faces.featuring, facesErr = newFace(regular, 18); facesErr != nil {
			return
		}
		if faces.companyName, facesErr = newFace(bold, 24); facesErr != nil {
			return
		}
		if faces.boothInfo, facesErr = newFace(regular, 16); facesErr != nil {
			return
		}
		faces.initial, facesErr = newFace(bold, 36)
	})
	return faces, facesErr
}

// Compose renders the 800x400 marketing banner and returns PNG bytes. A logo
// that fails to decode is recovered internally with the initial-glyph
// fallback; any other failure returns an error and no partial output.
func Compose(in Input) ([]byte, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, err
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(canvas, gradientStart, gradientEnd)

	logo := decodeLogo(in.Logo)
	if logo != nil {
		r := logoBoxSize/2 + platePadding
		fillCircle(canvas, centerX, centerY, r, plateWhite)
		box := image.Rect(centerX-logoBoxSize/2, centerY-logoBoxSize/2, centerX+logoBoxSize/2, centerY+logoBoxSize/2)
		xdraw.CatmullRom.Scale(canvas, box, logo, logo.Bounds(), xdraw.Over, nil)
	} else {
		fillCircle(canvas, centerX, centerY, logoBoxSize/2+platePadding, plateWhite)
		drawCentered(canvas, f.initial, gradientStart, companyInitial(in.CompanyName), centerX, centerY)
	}

	drawCentered(canvas, f.eventName, textWhite, in.EventName, centerX, eventNameY)
	drawCentered(canvas, f.featuring, textDimWhite, "Featuring", centerX, featuringY)
	drawCentered(canvas, f.companyName, textWhite, in.CompanyName, centerX, companyNameY)

	boothNumber := in.BoothNumber
	if boothNumber == "" {
		boothNumber = "TBD"
	}
	boothInfo := fmt.Sprintf("Booth %s • %s", boothNumber, in.BoothSize)
	drawCentered(canvas, f.boothInfo, textDimWhite, boothInfo, centerX, boothInfoY)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode banner: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeLogo returns nil for absent or undecodable logo bytes.
func decodeLogo(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

func companyInitial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// fillGradient paints a left-to-right linear gradient across the canvas.
func fillGradient(dst *image.NRGBA, from, to color.NRGBA) {
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		t := float64(x-b.Min.X) / float64(b.Dx()-1)
		c := color.NRGBA{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
			A: 0xFF,
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetNRGBA(x, y, c)
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// circleMask is an alpha mask for filled-circle drawing.
type circleMask struct {
	cx, cy, r int
}

func (c *circleMask) ColorModel() color.Model { return color.AlphaModel }

func (c *circleMask) Bounds() image.Rectangle {
	return image.Rect(c.cx-c.r, c.cy-c.r, c.cx+c.r, c.cy+c.r)
}

func (c *circleMask) At(x, y int) color.Color {
	dx := float64(x-c.cx) + 0.5
	dy := float64(y-c.cy) + 0.5
	if dx*dx+dy*dy <= float64(c.r)*float64(c.r) {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}

func fillCircle(dst draw.Image, cx, cy, r int, col color.Color) {
	mask := &circleMask{cx: cx, cy: cy, r: r}
	draw.DrawMask(dst, mask.Bounds(), image.NewUniform(col), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// drawCentered renders text centered horizontally on cx and vertically on cy.
func drawCentered(dst draw.Image, face font.Face, col color.Color, text string, cx, cy int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := d.MeasureString(text)
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - w/2,
		Y: fixed.I(cy) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}
