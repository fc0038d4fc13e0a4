// Package surface provides an in-memory implementation of capture.Surface.
// It hosts a fixed root/content element tree and rasterizes labeled
// placeholder frames, which is enough to exercise the whole capture pipeline
// in tests and in the CLI's manifest runs without a GUI toolkit.
package surface

import (
	"context"
	"image"
	"image/color"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/appdeploy/storeshots/capture"
	"github.com/appdeploy/storeshots/capture/definitions"
)

// Memory is an in-memory render surface. It is not safe for concurrent use;
// like the real simulated display it is meant to be driven by one capture
// loop at a time.
type Memory struct {
	width, height int
	ratio         float64
	textScale     float64
	brightness    definitions.Brightness
	safeArea      definitions.EdgeInsets

	label    string
	elements []capture.Element

	settleCalls int
	pumpCalls   int
	primeCalls  int

	// SettleErr, PumpErr and PrimeErr, when set, are returned by the
	// corresponding operations. Test hooks.
	SettleErr error
	PumpErr   error
	PrimeErr  error
}

// NewMemory returns a surface with desktop-ish defaults: 800x600 at ratio 1,
// text scale 1, light brightness, no safe area. The mounted tree is a root
// paint boundary with one plain content child.
func NewMemory() *Memory {
	m := &Memory{
		width:      800,
		height:     600,
		ratio:      1,
		textScale:  1,
		brightness: definitions.BrightnessLight,
	}
	root := &element{m: m, key: "root", boundary: true}
	content := &element{m: m, key: "content", parent: root}
	m.elements = []capture.Element{root, content}
	return m
}

// MountLabel sets the text drawn into rendered frames, typically the
// scenario name.
func (m *Memory) MountLabel(label string) { m.label = label }

// MountWithoutPaintBoundary replaces the tree with a single element that
// cannot rasterize, for exercising the no-render-surface failure path.
func (m *Memory) MountWithoutPaintBoundary() {
	m.elements = []capture.Element{&element{m: m, key: "bare"}}
}

// MountEmpty unmounts everything, for exercising the no-match failure path.
func (m *Memory) MountEmpty() { m.elements = nil }

func (m *Memory) PhysicalSize() (int, int)               { return m.width, m.height }
func (m *Memory) SetPhysicalSize(w, h int)               { m.width, m.height = w, h }
func (m *Memory) PixelRatio() float64                    { return m.ratio }
func (m *Memory) SetPixelRatio(ratio float64)            { m.ratio = ratio }
func (m *Memory) TextScale() float64                     { return m.textScale }
func (m *Memory) SetTextScale(scale float64)             { m.textScale = scale }
func (m *Memory) Brightness() definitions.Brightness     { return m.brightness }
func (m *Memory) SetBrightness(b definitions.Brightness) { m.brightness = b }
func (m *Memory) SafeArea() definitions.EdgeInsets       { return m.safeArea }
func (m *Memory) SetSafeArea(in definitions.EdgeInsets)  { m.safeArea = in }

func (m *Memory) Elements() []capture.Element { return m.elements }

func (m *Memory) Settle(ctx context.Context) error {
	m.settleCalls++
	if m.SettleErr != nil {
		return m.SettleErr
	}
	return ctx.Err()
}

func (m *Memory) Pump(ctx context.Context, _ time.Duration) error {
	m.pumpCalls++
	if m.PumpErr != nil {
		return m.PumpErr
	}
	return ctx.Err()
}

func (m *Memory) PrimeAssets(ctx context.Context) error {
	m.primeCalls++
	if m.PrimeErr != nil {
		return m.PrimeErr
	}
	return ctx.Err()
}

// SettleCalls reports how often Settle ran.
func (m *Memory) SettleCalls() int { return m.settleCalls }

// PumpCalls reports how often Pump ran.
func (m *Memory) PumpCalls() int { return m.pumpCalls }

// PrimeAssetCalls reports how often PrimeAssets ran.
func (m *Memory) PrimeAssetCalls() int { return m.primeCalls }

type element struct {
	m        *Memory
	key      string
	parent   *element
	boundary bool
}

func (e *element) Key() string { return e.key }

func (e *element) Parent() capture.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *element) IsPaintBoundary() bool { return e.boundary }

func (e *element) Render(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.m.paintFrame(), nil
}

type palette struct {
	background color.RGBA
	band       color.RGBA
	content    color.RGBA
	text       color.RGBA
}

var (
	lightPalette = palette{
		background: color.RGBA{0xF2, 0xF2, 0xF7, 0xFF},
		band:       color.RGBA{0xD9, 0xD9, 0xE3, 0xFF},
		content:    color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		text:       color.RGBA{0x1C, 0x1C, 0x1E, 0xFF},
	}
	darkPalette = palette{
		background: color.RGBA{0x1C, 0x1C, 0x1E, 0xFF},
		band:       color.RGBA{0x2C, 0x2C, 0x2E, 0xFF},
		content:    color.RGBA{0x3A, 0x3A, 0x3C, 0xFF},
		text:       color.RGBA{0xF2, 0xF2, 0xF7, 0xFF},
	}
)

// paintFrame rasterizes the placeholder at the current physical resolution:
// brightness-keyed background, safe-area bands, a content panel and the
// mounted label scaled by pixel ratio and text scale.
func (m *Memory) paintFrame() image.Image {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	pal := lightPalette
	if m.brightness == definitions.BrightnessDark {
		pal = darkPalette
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), pal.background)

	// Safe-area bands, logical insets scaled to device pixels.
	top := int(m.safeArea.Top * m.ratio)
	left := int(m.safeArea.Left * m.ratio)
	right := int(m.safeArea.Right * m.ratio)
	bottom := int(m.safeArea.Bottom * m.ratio)
	if top > 0 {
		fill(img, image.Rect(0, 0, w, min(top, h)), pal.band)
	}
	if bottom > 0 {
		fill(img, image.Rect(0, max(h-bottom, 0), w, h), pal.band)
	}
	if left > 0 {
		fill(img, image.Rect(0, 0, min(left, w), h), pal.band)
	}
	if right > 0 {
		fill(img, image.Rect(max(w-right, 0), 0, w, h), pal.band)
	}

	// Content panel inside the safe area.
	panel := image.Rect(left, top, w-right, h-bottom).Inset(max(w/40, 4))
	if !panel.Empty() {
		fill(img, panel, pal.content)
	}

	if m.label != "" {
		m.drawLabel(img, panel, pal.text)
	}
	return img
}

// drawLabel renders the label with the basic bitmap face, then scales it by
// ratio x textScale into the panel center.
func (m *Memory) drawLabel(dst *image.RGBA, panel image.Rectangle, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, m.label).Ceil()
	if width <= 0 {
		return
	}
	height := face.Metrics().Height.Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(m.label)

	scale := m.ratio * m.textScale
	if scale <= 0 {
		scale = 1
	}
	scaledW := int(float64(width) * scale)
	scaledH := int(float64(height) * scale)
	if scaledW <= 0 || scaledH <= 0 {
		return
	}
	center := panel
	if center.Empty() {
		center = dst.Bounds()
	}
	x0 := center.Min.X + (center.Dx()-scaledW)/2
	y0 := center.Min.Y + (center.Dy()-scaledH)/2
	target := image.Rect(x0, y0, x0+scaledW, y0+scaledH).Intersect(dst.Bounds())
	if target.Empty() {
		return
	}
	draw.ApproxBiLinear.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
