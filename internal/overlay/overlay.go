// Package overlay renders the scannable QR card that can be stamped on a
// meme: either a sponsor link (routed through the sponsored-redirect page,
// with the sponsor's logo in the centre) or a tip address.
package overlay

import (
	"image/color"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

// Kind selects what the QR code encodes.
type Kind string

const (
	KindSponsor Kind = "sponsor"
	KindTip     Kind = "tip"
)

// Style is a named background/foreground colour pair.
type Style struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bg   string `json:"bgColor"`
	Fg   string `json:"fgColor"`
}

// DefaultStyleID is used when a config names no or an unknown style.
const DefaultStyleID = "vibrant-orange"

// Palette is the fixed set of overlay styles, in display order.
var Palette = []Style{
	{ID: "classic", Name: "Classic", Bg: "#FFFFFF", Fg: "#000000"},
	{ID: "vibrant-orange", Name: "Vibrant Orange", Bg: "#FFFFFF", Fg: "#FF5733"},
	{ID: "neon-green", Name: "Neon Green", Bg: "#000000", Fg: "#39FF14"},
	{ID: "cool-blue", Name: "Cool Blue", Bg: "#FFFFFF", Fg: "#0066FF"},
	{ID: "pink-pop", Name: "Pink Pop", Bg: "#FFFFFF", Fg: "#FF69B4"},
	{ID: "meme-gold", Name: "Meme Gold", Bg: "#000000", Fg: "#FFD700"},
}

// StyleByID returns the named style, falling back to the default.
func StyleByID(id string) Style {
	for _, s := range Palette {
		if s.ID == id {
			return s
		}
	}
	for _, s := range Palette {
		if s.ID == DefaultStyleID {
			return s
		}
	}
	return Palette[0]
}

// Colors returns the style's parsed colours.
func (s Style) Colors() (bg, fg color.RGBA) {
	return parseColorParam(s.Bg, color.RGBA{255, 255, 255, 255}), parseColorParam(s.Fg, color.RGBA{0, 0, 0, 255})
}

// tipAddress matches a full-length account address.
var tipAddress = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// Config is the user's overlay choice.
type Config struct {
	Enabled bool   `json:"enabled"`
	Kind    Kind   `json:"kind"`
	Target  string `json:"target"`
	Style   string `json:"style"`
	Logo    string `json:"logo,omitempty"`
}

// Validate checks the target for the config's kind. Callers treat a failure
// as "overlay off", not as a fatal error.
func Validate(c Config) error {
	target := strings.TrimSpace(c.Target)
	switch c.Kind {
	case KindSponsor, "":
		if !ValidURL(target) {
			return apperr.New(apperr.CodeInvalidInput, "Please enter a valid URL")
		}
	case KindTip:
		if !tipAddress.MatchString(target) {
			return apperr.New(apperr.CodeInvalidInput, "Please enter a valid wallet address")
		}
	default:
		return apperr.New(apperr.CodeInvalidInput, "Unknown QR code type %q", c.Kind)
	}
	return nil
}

// Renderable reports whether the overlay should be drawn.
func Renderable(c Config) bool {
	return c.Enabled && Validate(c) == nil
}

// ValidURL accepts absolute URLs: a scheme plus a host or opaque part.
func ValidURL(s string) bool {
	if s == "" || len(s) > 4096 {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// parseColorParam parses "#RRGGBB" (or "transparent"), returning def for
// anything else.
func parseColorParam(param string, def color.RGBA) color.RGBA {
	if param == "" {
		return def
	}
	if strings.EqualFold(param, "transparent") {
		return color.RGBA{}
	}
	param = strings.TrimPrefix(param, "#")
	if len(param) != 6 {
		return def
	}
	r, err1 := strconv.ParseUint(param[0:2], 16, 8)
	g, err2 := strconv.ParseUint(param[2:4], 16, 8)
	b, err3 := strconv.ParseUint(param[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return def
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}
