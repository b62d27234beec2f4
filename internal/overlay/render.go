package overlay

import (
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

const (
	// moduleSize is the pixel width of one QR module before final scaling.
	moduleSize = 12
	// paddingPercent of the code's width is added on each side.
	paddingPercent = 7
	// logoDivisor keeps the logo under the writer's 1/5 width limit.
	logoDivisor = 6
)

// Payload returns the string the QR code encodes. Sponsor links are wrapped
// in the redirect page on baseURL.
func Payload(c Config, baseURL string) (string, error) {
	if err := Validate(c); err != nil {
		return "", err
	}
	target := strings.TrimSpace(c.Target)
	if c.Kind == KindTip {
		return target, nil
	}
	return EncodeRedirect(baseURL, target), nil
}

// Render draws the overlay card at size×size: the QR code in the style's
// colours on a padded, rounded background.
func Render(c Config, baseURL string, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, "Invalid QR size %d", size)
	}
	payload, err := Payload(c, baseURL)
	if err != nil {
		return nil, err
	}
	bg, fg := StyleByID(c.Style).Colors()

	var code image.Image
	if c.Kind == KindTip {
		code, err = tipCode(payload, bg, fg)
	} else {
		code, err = sponsorCode(payload, c.Logo, bg, fg)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeRender, err, "Failed to generate QR code")
	}

	card := addPadding(code, paddingPercent, bg)
	roundCorners(card, int(math.Round(float64(card.Bounds().Dx())*0.08)))
	return exactSize(card, size), nil
}

// sponsorCode renders through the standard writer, which only writes to
// files, so the code and logo go through temp files.
func sponsorCode(payload, logo string, bg, fg color.RGBA) (image.Image, error) {
	qrc, err := qrcode.NewWith(payload, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	opts := []standard.ImageOption{
		standard.WithQRWidth(moduleSize),
		standard.WithBorderWidth(0),
		standard.WithBgColor(bg),
		standard.WithFgColor(fg),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	}

	side := qrc.Dimension() * moduleSize / logoDivisor
	if side > 0 {
		img, err := Logo(logo, side)
		if err != nil {
			return nil, err
		}
		logoFile := filepath.Join(os.TempDir(), generateUniqueFilename("logo", ".png"))
		if err := imaging.Save(img, logoFile); err != nil {
			return nil, fmt.Errorf("write logo: %w", err)
		}
		defer os.Remove(logoFile)
		opts = append(opts, standard.WithLogoImageFilePNG(logoFile))
	}

	tmpFile := filepath.Join(os.TempDir(), generateUniqueFilename("qr", ".png"))
	defer os.Remove(tmpFile)
	writer, err := standard.New(tmpFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("create writer: %w", err)
	}
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}

	img, err := imaging.Open(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("read back: %w", err)
	}
	return img, nil
}

func tipCode(payload string, bg, fg color.RGBA) (image.Image, error) {
	q, err := skip2.New(payload, skip2.High)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	q.DisableBorder = true
	q.BackgroundColor = bg
	q.ForegroundColor = fg
	return q.Image(-moduleSize), nil
}

// addPadding surrounds img with percent of its width in bg on every side.
func addPadding(img image.Image, percent int, bg color.RGBA) *image.RGBA {
	b := img.Bounds()
	pad := b.Dx() * percent / 100
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+pad*2, b.Dy()+pad*2))
	draw.Draw(out, out.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(pad, pad, pad+b.Dx(), pad+b.Dy()), img, b.Min, draw.Src)
	return out
}

// roundCorners clears the pixels outside a rounded rectangle of radius r.
func roundCorners(img *image.RGBA, r int) {
	b := img.Bounds()
	right, bottom := b.Dx()-1, b.Dy()-1
	for y := 0; y <= bottom; y++ {
		for x := 0; x <= right; x++ {
			if !insideRoundedRect(x, y, 0, 0, right, bottom, r) {
				img.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{})
			}
		}
	}
}

func insideRoundedRect(x, y, left, top, right, bottom, r int) bool {
	if r <= 0 {
		return x >= left && x <= right && y >= top && y <= bottom
	}
	if x >= left+r && x <= right-r && y >= top && y <= bottom {
		return true
	}
	if y >= top+r && y <= bottom-r && x >= left && x <= right {
		return true
	}
	for _, c := range [4][2]int{
		{left + r, top + r}, {right - r, top + r},
		{left + r, bottom - r}, {right - r, bottom - r},
	} {
		dx, dy := x-c[0], y-c[1]
		if dx*dx+dy*dy <= r*r {
			return true
		}
	}
	return false
}

// exactSize scales img to size×size with nearest-neighbour sampling so module
// edges stay sharp.
func exactSize(img image.Image, size int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		if rgba, ok := img.(*image.RGBA); ok {
			return rgba
		}
	}
	scaled := imaging.Resize(img, size, size, imaging.NearestNeighbor)
	out := image.NewRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	return out
}

func generateUniqueFilename(prefix, extension string) string {
	randomBytes := make([]byte, 4)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s_%d_%x%s", prefix, time.Now().UnixNano(), randomBytes, extension)
}
