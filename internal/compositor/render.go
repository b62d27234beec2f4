package compositor

import (
	"context"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
)

const (
	// QRFraction is the overlay side as a fraction of the image width.
	QRFraction = 0.15
	// qrMargin is the gap between the default overlay and the image corner.
	qrMargin = 0.03
	// textMargin is the share of a slot's width kept clear of text.
	textMargin  = 0.1
	lineSpacing = 1.15
)

// Scene is everything needed to render one meme.
type Scene struct {
	Template *catalog.Template
	// Background replaces the template image when set (uploaded images).
	Background image.Image
	Slots      []SlotState
	// Overlay is drawn QRFraction wide, centred on OverlayCenter or the
	// default corner.
	Overlay       image.Image
	OverlayCenter *Point
}

// DefaultQRPosition is the centre of the overlay in the bottom-right corner.
func DefaultQRPosition(width, height int) Point {
	w, h := float64(width), float64(height)
	size := w * QRFraction
	margin := w * qrMargin
	return Point{w - margin - size/2, h - margin - size/2}
}

// Renderer composites scenes into images at Scale times the template size.
type Renderer struct {
	Fonts   *Fonts
	Loader  ImageLoader
	Scale   int
	Outline color.Color
	Fill    color.Color
	NoBreak []string
}

// NewRenderer returns a renderer with black outlines and white fill.
func NewRenderer(fonts *Fonts, loader ImageLoader, scale int) *Renderer {
	if scale < 1 {
		scale = 2
	}
	return &Renderer{
		Fonts:   fonts,
		Loader:  loader,
		Scale:   scale,
		Outline: color.Black,
		Fill:    color.White,
		NoBreak: DefaultNoBreak,
	}
}

// Render draws the template cover-fitted, each caption, then the overlay.
// Any failure aborts the whole render; no partial image is returned.
func (r *Renderer) Render(ctx context.Context, s Scene) (image.Image, error) {
	tpl := s.Template
	if tpl == nil || tpl.Width <= 0 || tpl.Height <= 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "No template selected")
	}
	bg := s.Background
	if bg == nil {
		img, err := r.Loader.Load(ctx, tpl.Path)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeRender, err, "Failed to load template image")
		}
		bg = img
	}
	if err := ctx.Err(); err != nil {
		return nil, apperr.Wrap(apperr.CodeRender, err, "Export cancelled")
	}

	scale := float64(r.Scale)
	cw, ch := tpl.Width*r.Scale, tpl.Height*r.Scale
	dc := gg.NewContext(cw, ch)

	rect := coverRect(bg.Bounds().Dx(), bg.Bounds().Dy(), cw, ch)
	if rect.Empty() {
		return nil, apperr.New(apperr.CodeRender, "Template image is empty")
	}
	dc.DrawImage(imaging.Resize(bg, rect.Dx(), rect.Dy(), imaging.Lanczos), rect.Min.X, rect.Min.Y)

	faces := newFaceCache(r.Fonts)
	defer faces.close()
	for _, st := range s.Slots {
		if err := ctx.Err(); err != nil {
			return nil, apperr.Wrap(apperr.CodeRender, err, "Export cancelled")
		}
		slot, ok := tpl.Slot(st.ID)
		if !ok || strings.TrimSpace(st.Text) == "" {
			continue
		}
		l := r.layoutCaption(faces, tpl, slot, st.At(slot), st.Text)
		r.drawCaption(dc, faces.get(l.Size), l)
	}

	if s.Overlay != nil {
		center := DefaultQRPosition(tpl.Width, tpl.Height)
		if s.OverlayCenter != nil {
			center = *s.OverlayCenter
		}
		side := int(math.Round(float64(cw) * QRFraction))
		qr := imaging.Resize(s.Overlay, side, side, imaging.NearestNeighbor)
		dc.DrawImageAnchored(qr, int(math.Round(center.X*scale)), int(math.Round(center.Y*scale)), 0.5, 0.5)
	}
	return dc.Image(), nil
}

// coverRect fills a cw×ch canvas with an iw×ih image without letterboxing:
// a wider image is fitted by height and centred horizontally, a taller one by
// width and centred vertically.
func coverRect(iw, ih, cw, ch int) image.Rectangle {
	if iw <= 0 || ih <= 0 || cw <= 0 || ch <= 0 {
		return image.Rectangle{}
	}
	imgAspect := float64(iw) / float64(ih)
	canvasAspect := float64(cw) / float64(ch)
	if imgAspect > canvasAspect {
		w := int(math.Round(float64(ch) * imgAspect))
		x := (cw - w) / 2
		return image.Rect(x, 0, x+w, ch)
	}
	h := int(math.Round(float64(cw) / imgAspect))
	y := (ch - h) / 2
	return image.Rect(0, y, cw, y+h)
}

// captionLayout is a caption resolved to canvas pixels.
type captionLayout struct {
	Lines      []string
	Size       float64
	X, Y       float64 // Y is the vertical centre of the text block
	AnchorX    float64
	LineHeight float64
}

func (r *Renderer) layoutCaption(faces *faceCache, tpl *catalog.Template, slot catalog.TextSlot, pos Point, text string) captionLayout {
	s := float64(r.Scale)
	text = strings.ToUpper(text)
	size := float64(tpl.Width) * tpl.FontScale() * s
	minSize := tpl.MinFontSize() * s
	boxW, boxH := slot.Width*s, slot.Height*s
	usable := boxW * (1 - textMargin)

	lines := Wrap(text, WrapOptions{
		Threshold:    tpl.WrapThreshold(),
		CharsPerLine: CharsPerLine(boxW, size),
		NoBreak:      r.NoBreak,
	})

	for size > minSize {
		widest := widestLine(faces.get(size), lines)
		height := float64(len(lines)) * size * lineSpacing
		if widest <= usable && height <= boxH {
			break
		}
		ratio := math.Min(usable/math.Max(widest, 1), boxH/math.Max(height, 1))
		next := math.Floor(size * ratio)
		if next >= size {
			next = size - 1
		}
		size = math.Max(minSize, next)
	}

	l := captionLayout{
		Lines:      lines,
		Size:       size,
		Y:          pos.Y * s,
		LineHeight: size * lineSpacing,
	}
	pad := boxW * textMargin / 2
	switch slot.Align {
	case catalog.AlignLeft:
		l.X, l.AnchorX = pos.X*s-boxW/2+pad, 0
	case catalog.AlignRight:
		l.X, l.AnchorX = pos.X*s+boxW/2-pad, 1
	default:
		l.X, l.AnchorX = pos.X*s, 0.5
	}
	return l
}

func widestLine(face font.Face, lines []string) float64 {
	var w float64
	for _, line := range lines {
		w = math.Max(w, measure(face, line))
	}
	return w
}

// drawCaption strokes every line by drawing it at each offset within a small
// radius in the outline colour, then fills it on top.
func (r *Renderer) drawCaption(dc *gg.Context, face font.Face, l captionLayout) {
	dc.SetFontFace(face)
	n := int(math.Max(1, math.Round(l.Size/18)))
	top := l.Y - l.LineHeight*float64(len(l.Lines))/2
	for i, line := range l.Lines {
		y := top + l.LineHeight*(float64(i)+0.5)
		dc.SetColor(r.Outline)
		for dy := -n; dy <= n; dy++ {
			for dx := -n; dx <= n; dx++ {
				if dx*dx+dy*dy > n*n {
					continue
				}
				dc.DrawStringAnchored(line, l.X+float64(dx), y+float64(dy), l.AnchorX, 0.5)
			}
		}
		dc.SetColor(r.Fill)
		dc.DrawStringAnchored(line, l.X, y, l.AnchorX, 0.5)
	}
}
