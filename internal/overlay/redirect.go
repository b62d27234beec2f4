package overlay

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

// RedirectPath is the sponsored-redirect page.
const RedirectPath = "/sponsored-meme"

var (
	ErrNoURL        = apperr.New(apperr.CodeInvalidInput, "No URL parameter provided")
	ErrInvalidBase  = apperr.New(apperr.CodeInvalidInput, "Invalid Base64 encoded URL")
	ErrInvalidAfter = apperr.New(apperr.CodeInvalidInput, "Invalid URL format after decoding")
)

// EncodeRedirect wraps target in a link to the sponsored page on base.
func EncodeRedirect(base, target string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(target))
	return strings.TrimRight(base, "/") + RedirectPath + "?url=" + url.QueryEscape(enc)
}

// DecodeRedirect decodes the page's url parameter. It accepts standard and
// URL-safe alphabets, padded or not, and repairs '+' that arrived as a space.
func DecodeRedirect(param string) (string, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return "", ErrNoURL
	}
	param = strings.ReplaceAll(param, " ", "+")

	var decoded []byte
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if decoded, err = enc.DecodeString(param); err == nil {
			break
		}
	}
	if err != nil || !utf8.Valid(decoded) {
		return "", ErrInvalidBase
	}
	s := string(decoded)
	if !ValidURL(s) {
		return "", ErrInvalidAfter
	}
	return s, nil
}
