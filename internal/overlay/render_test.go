package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

func TestLogo(t *testing.T) {
	img, err := Logo("aptos", 64)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("rounded corner alpha = %d, want 0", a)
	}
	if c := img.RGBAAt(32, 26); c.R > 10 || c.A != 255 {
		t.Errorf("logo body pixel = %v, want opaque black", c)
	}
	if _, err := Logo("missing", 64); err == nil {
		t.Error("expected error for unknown logo")
	}
	if names := Logos(); len(names) < 2 || names[0] != "aptos" {
		t.Errorf("Logos() = %v", names)
	}
}

func TestRenderTip(t *testing.T) {
	cfg := Config{Enabled: true, Kind: KindTip, Target: validTip, Style: "meme-gold"}
	img, err := Render(cfg, "https://memezzz.com", 300)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 300, 300) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Error("card corner should be transparent")
	}
	gold := color.RGBA{0xFF, 0xD7, 0x00, 255}
	black := color.RGBA{0, 0, 0, 255}
	var fg, bg int
	for y := 40; y < 260; y++ {
		for x := 40; x < 260; x++ {
			switch img.RGBAAt(x, y) {
			case gold:
				fg++
			case black:
				bg++
			}
		}
	}
	if fg == 0 || bg == 0 {
		t.Errorf("style colours missing: fg=%d bg=%d", fg, bg)
	}
}

func TestRenderSponsor(t *testing.T) {
	cfg := Config{Enabled: true, Kind: KindSponsor, Target: "https://example.com/story", Style: "classic"}
	img, err := Render(cfg, "https://memezzz.com", 256)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 256 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
	payload, _ := Payload(cfg, "https://memezzz.com")
	if payload != EncodeRedirect("https://memezzz.com", "https://example.com/story") {
		t.Errorf("payload = %q", payload)
	}
}

func TestRenderRejectsInvalid(t *testing.T) {
	_, err := Render(Config{Enabled: true, Kind: KindTip, Target: "nope"}, "", 100)
	if !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
	_, err = Render(Config{Enabled: true, Kind: KindTip, Target: validTip}, "", 0)
	if !apperr.Is(err, apperr.CodeInvalidInput) {
		t.Errorf("size 0: err = %v", err)
	}
}

func TestCardHelpers(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	card := addPadding(src, 7, color.RGBA{255, 255, 255, 255})
	if card.Bounds().Dx() != 114 {
		t.Errorf("padded width = %d", card.Bounds().Dx())
	}
	if !insideRoundedRect(50, 0, 0, 0, 99, 99, 10) || insideRoundedRect(0, 0, 0, 0, 99, 99, 10) {
		t.Error("rounded rect hit test wrong at edges")
	}
	if got := exactSize(card, 57); got.Bounds().Dx() != 57 || got.Bounds().Dy() != 57 {
		t.Errorf("exactSize bounds = %v", got.Bounds())
	}
}
