package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/memezzz/internal/cache"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/feedback"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
	"github.com/cristianadrielbraun/memezzz/internal/textgen"
)

func init() { gin.SetMode(gin.TestMode) }

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{40, 90, 160, 255}}, image.Point{}, draw.Src)
	return img
}

func testRenderer(t *testing.T) *compositor.Renderer {
	t.Helper()
	fonts, err := compositor.DefaultFonts()
	if err != nil {
		t.Fatalf("fonts: %v", err)
	}
	images := compositor.ImageMap{}
	for _, tpl := range catalog.Default().All() {
		images[tpl.Path] = solid(120, 90)
	}
	return compositor.NewRenderer(fonts, images, 1)
}

type fakeGenerator struct {
	captions compositor.Captions
	err      error
	got      textgen.Request
}

func (g *fakeGenerator) Generate(ctx context.Context, req textgen.Request) (compositor.Captions, error) {
	g.got = req
	return g.captions, g.err
}

// newTestRouter registers the handler routes the tests exercise.
func newTestRouter(h *Handler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.GET("/templates", h.ListTemplates)
	api.GET("/templates/:id", h.GetTemplate)
	api.GET("/examples", h.ListExamples)
	api.GET("/examples/:index/image", h.ExampleImage)
	api.POST("/preview", h.Preview)
	api.POST("/export", h.Export)
	api.POST("/generate-meme-text", h.GenerateMemeText)
	api.POST("/fetch-news-text", h.FetchNewsText)
	api.POST("/submit-feedback", h.SubmitFeedback)
	api.GET("/qr", h.QRCodeHandler)
	api.GET("/qr/styles", h.QRStyles)
	api.POST("/uploads", h.Upload)
	api.GET("/uploads/:id", h.GetUpload)
	api.DELETE("/uploads/:id", h.DeleteUpload)
	api.POST("/htmx/toast", h.GenericToast)
	r.GET("/", h.Home)
	r.GET("/meme-creator", h.Creator)
	r.GET("/sponsored-meme", h.SponsoredMeme)
	r.GET("/sitemap.xml", h.SitemapXML)
	r.GET("/health", h.Health)
	r.NoRoute(h.NotFound)
	return r
}

func do(r http.Handler, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return m
}

func TestHealth(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	w := do(r, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w)["templates"]; got != float64(4) {
		t.Errorf("templates = %v, want 4", got)
	}
}

func TestSitemapXML(t *testing.T) {
	r := newTestRouter(New(Deps{BaseURL: "https://memezzz.example/"}))
	w := do(r, http.MethodGet, "/sitemap.xml", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<loc>https://memezzz.example/</loc>",
		"<loc>https://memezzz.example/meme-creator</loc>",
		"<loc>https://memezzz.example/meme-creator?template=drake</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("content type = %q", ct)
	}
}

func TestTemplatesAPI(t *testing.T) {
	r := newTestRouter(New(Deps{}))

	w := do(r, http.MethodGet, "/api/templates", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if n := len(decode(t, w)["templates"].([]any)); n != 4 {
		t.Errorf("templates = %d, want 4", n)
	}

	w = do(r, http.MethodGet, "/api/templates/drake", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	if got := decode(t, w)["imageUrl"]; got != "https://i.imgflip.com/30b1gx.jpg" {
		t.Errorf("imageUrl = %v", got)
	}

	w = do(r, http.MethodGet, "/api/templates/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Template not found" {
		t.Errorf("error = %v", got)
	}
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(New(Deps{}))

	w := do(r, http.MethodGet, "/api/unknown", nil, nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("api 404 = %d %s", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/nowhere", nil, nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("page 404 = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
}

func TestExamples(t *testing.T) {
	h := New(Deps{Renderer: testRenderer(t), Cache: cache.NewMemoryCache()})
	r := newTestRouter(h)

	w := do(r, http.MethodGet, "/api/examples", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	m := decode(t, w)
	if n := len(m["examples"].([]any)); n != 4 {
		t.Errorf("examples = %d", n)
	}
	if f := m["featured"].(float64); f < 0 || f > 3 {
		t.Errorf("featured = %v", f)
	}

	for i := 0; i < 2; i++ {
		w = do(r, http.MethodGet, "/api/examples/0/image", nil, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("image status = %d: %s", w.Code, w.Body.String())
		}
		if _, err := png.Decode(w.Body); err != nil {
			t.Fatalf("decode png: %v", err)
		}
	}
	if _, ok, _ := h.Cache.Get(context.Background(), "example:0:drake"); !ok {
		t.Error("example image not cached")
	}

	if w = do(r, http.MethodGet, "/api/examples/x/image", nil, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad index status = %d", w.Code)
	}
	if w = do(r, http.MethodGet, "/api/examples/99/image", nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("missing index status = %d", w.Code)
	}
}

func TestPreview(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	body := []byte(`{"templateId":"drake","slots":[{"id":"top","text":"hello"}]}`)

	w := do(r, http.MethodPost, "/api/preview", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var l compositor.Layout
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Boxes) != 2 || l.Boxes[0].Text != "HELLO" {
		t.Errorf("boxes = %+v", l.Boxes)
	}

	w = do(r, http.MethodPost, "/api/preview", body, map[string]string{"HX-Request": "true"})
	if !strings.Contains(w.Body.String(), `data-slot="top"`) || !strings.Contains(w.Body.String(), "HELLO") {
		t.Errorf("htmx preview = %s", w.Body.String())
	}
}

func TestExportAttachment(t *testing.T) {
	r := newTestRouter(New(Deps{Renderer: testRenderer(t)}))
	body := []byte(`{"templateId":"drake","slots":[{"id":"top","text":"old code"},{"id":"bottom","text":"new code"}]}`)

	w := do(r, http.MethodPost, "/api/export", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="meme-drake-hotline-bling-`) {
		t.Errorf("content disposition = %q", cd)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 1200 || b.Dy() != 1200 {
		t.Errorf("size = %v, want 1200x1200", b)
	}
}

func TestExportDataURL(t *testing.T) {
	r := newTestRouter(New(Deps{Renderer: testRenderer(t)}))
	body := []byte(`{"templateId":"change-my-mind","name":"Hot Take!","qr":{"enabled":true},"overlay":{"kind":"sponsor","target":"https://example.com"}}`)

	w := do(r, http.MethodPost, "/api/export?format=dataurl", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	if !strings.HasPrefix(m["dataUrl"].(string), "data:image/png;base64,") {
		t.Errorf("dataUrl prefix = %.40s", m["dataUrl"])
	}
	name := m["filename"].(string)
	if !strings.HasPrefix(name, "meme-hot-take-") || !strings.HasSuffix(name, ".png") {
		t.Errorf("filename = %q", name)
	}
	if !strings.Contains(m["message"].(string), name) {
		t.Errorf("message = %q", m["message"])
	}
}

func TestExportErrors(t *testing.T) {
	r := newTestRouter(New(Deps{Renderer: testRenderer(t)}))
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"unknown template", `{"templateId":"nope"}`, http.StatusNotFound},
		{"unknown upload", `{"uploadId":"nope"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/export", []byte(tt.body), nil)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}

	noRenderer := newTestRouter(New(Deps{}))
	w := do(noRenderer, http.MethodPost, "/api/export", []byte(`{"templateId":"drake"}`), nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("no renderer status = %d", w.Code)
	}
}

func TestExportInvalidOverlayStillExports(t *testing.T) {
	r := newTestRouter(New(Deps{Renderer: testRenderer(t)}))
	body := []byte(`{"templateId":"drake","qr":{"enabled":true},"overlay":{"kind":"tip","target":"not-an-address"}}`)
	if w := do(r, http.MethodPost, "/api/export", body, nil); w.Code != http.StatusOK {
		t.Errorf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestGenerateMemeText(t *testing.T) {
	gen := &fakeGenerator{captions: compositor.Captions{Top: "A", Bottom: "B", Additional: []string{"C", "D"}}}
	r := newTestRouter(New(Deps{Generator: gen}))

	w := do(r, http.MethodPost, "/api/generate-meme-text", []byte(`{"templateId":"distracted-boyfriend","newsText":"  Go 2 released  "}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	slots := m["slots"].([]any)
	if len(slots) != 3 || slots[2] != "C" {
		t.Errorf("slots = %v", slots)
	}
	if gen.got.SourceText != "Go 2 released" {
		t.Errorf("source = %q", gen.got.SourceText)
	}
	if gen.got.MaxCharacters != 20 {
		t.Errorf("max characters = %d", gen.got.MaxCharacters)
	}
}

func TestGenerateMemeTextCustomTemplate(t *testing.T) {
	gen := &fakeGenerator{captions: compositor.Captions{Top: "A", Bottom: "B"}}
	r := newTestRouter(New(Deps{Generator: gen}))

	w := do(r, http.MethodPost, "/api/generate-meme-text", []byte(`{"templateName":"My cat"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	if slots := m["slots"].([]any); len(slots) != 2 {
		t.Errorf("slots = %v", slots)
	}
	if add := m["additionalTexts"].([]any); len(add) != 0 {
		t.Errorf("additionalTexts = %v", add)
	}

	w = do(r, http.MethodPost, "/api/generate-meme-text", []byte(`{}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("no template status = %d", w.Code)
	}
}

func TestGenerateMemeTextUnconfigured(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	w := do(r, http.MethodPost, "/api/generate-meme-text", []byte(`{"templateId":"drake"}`), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "API configuration error" {
		t.Errorf("error = %v", got)
	}
}

func TestFetchNewsText(t *testing.T) {
	news := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script>x()</script><p>Go &amp; WebAssembly</p></html>`))
	}))
	defer news.Close()
	r := newTestRouter(New(Deps{}))

	w := do(r, http.MethodPost, "/api/fetch-news-text", []byte(`{"url":"`+news.URL+`"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["newsText"]; got != "Go & WebAssembly" {
		t.Errorf("newsText = %q", got)
	}

	w = do(r, http.MethodPost, "/api/fetch-news-text", []byte(`{"url":""}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty url status = %d", w.Code)
	}
}

func TestSubmitFeedback(t *testing.T) {
	var sent []byte
	tg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		sent = buf.Bytes()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer tg.Close()
	r := newTestRouter(New(Deps{Telegram: feedback.NewTelegram("token", "42", tg.URL)}))

	w := do(r, http.MethodPost, "/api/submit-feedback", []byte(`{"feedback":"love it","email":"a@b.c"}`), map[string]string{"X-Forwarded-For": "203.0.113.7"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["success"]; got != true {
		t.Errorf("success = %v", got)
	}
	if !bytes.Contains(sent, []byte("love it")) || !bytes.Contains(sent, []byte("203.0.113.7")) {
		t.Errorf("telegram body = %s", sent)
	}

	long := strings.Repeat("x", feedback.MaxLength+1)
	w = do(r, http.MethodPost, "/api/submit-feedback", []byte(`{"feedback":"`+long+`"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("too long status = %d", w.Code)
	}
	w = do(r, http.MethodPost, "/api/submit-feedback", []byte(`{"feedback":""}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty status = %d", w.Code)
	}
}

func TestSubmitFeedbackUnconfigured(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	w := do(r, http.MethodPost, "/api/submit-feedback", []byte(`{"feedback":"hi"}`), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if got := decode(t, w)["error"]; got != "Internal server error" {
		t.Errorf("error = %v", got)
	}
}

func TestQRCodeHandler(t *testing.T) {
	r := newTestRouter(New(Deps{BaseURL: "https://memezzz.example"}))
	tip := "0x" + strings.Repeat("ab", 32)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"missing target", "", http.StatusBadRequest},
		{"invalid url", "?target=not%20a%20url", http.StatusBadRequest},
		{"invalid tip", "?kind=tip&target=0x12", http.StatusBadRequest},
		{"bad preview size", "?target=https://example.com&previewSize=0", http.StatusBadRequest},
		{"sponsor", "?target=https://example.com&style=neon-green", http.StatusOK},
		{"tip", "?kind=tip&target=" + tip + "&previewSize=120", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/api/qr"+tt.query, nil, nil)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusOK {
				img, err := png.Decode(w.Body)
				if err != nil {
					t.Fatal(err)
				}
				if img.Bounds().Dx() == 0 {
					t.Error("empty image")
				}
			}
		})
	}
}

func TestQRStyles(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	w := do(r, http.MethodGet, "/api/qr/styles", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	m := decode(t, w)
	if m["defaultStyle"] != overlay.DefaultStyleID {
		t.Errorf("defaultStyle = %v", m["defaultStyle"])
	}
	if n := len(m["styles"].([]any)); n != len(overlay.Palette) {
		t.Errorf("styles = %d", n)
	}
}

func TestSponsoredMeme(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	link := overlay.EncodeRedirect("https://memezzz.example", "https://sponsor.example/deal")
	path := strings.TrimPrefix(link, "https://memezzz.example")

	w := do(r, http.MethodGet, path, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "https://sponsor.example/deal") {
		t.Errorf("page does not link the sponsor")
	}

	w = do(r, http.MethodGet, "/sponsored-meme", nil, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "No URL parameter provided") {
		t.Errorf("missing url = %d", w.Code)
	}
}

func TestPages(t *testing.T) {
	r := newTestRouter(New(Deps{}))

	w := do(r, http.MethodGet, "/", nil, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/meme-creator?template=drake") {
		t.Errorf("home = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/meme-creator?template=two-buttons", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("creator status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`id="meme-stage"`, `id="editor-template"`, `data-slot="person"`, "1g8my4.jpg"} {
		if !strings.Contains(body, want) {
			t.Errorf("creator page missing %s", want)
		}
	}

	w = do(r, http.MethodGet, "/meme-creator?template=nope", nil, nil)
	if !strings.Contains(w.Body.String(), "30b1gx.jpg") {
		t.Error("unknown template should fall back to the first")
	}
}

func TestGenericToast(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	req := httptest.NewRequest(http.MethodPost, "/api/htmx/toast", strings.NewReader("title=Saved&description=meme.png&variant=error"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	body := w.Body.String()
	if w.Code != http.StatusOK || !strings.Contains(body, "Saved") || !strings.Contains(body, `data-duration="3000"`) {
		t.Errorf("toast = %d %s", w.Code, body)
	}
}

func uploadRequest(t *testing.T, name string, data []byte, replace string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	if replace != "" {
		mw.WriteField("replace", replace)
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadLifecycle(t *testing.T) {
	h := New(Deps{Renderer: testRenderer(t)})
	r := newTestRouter(h)

	var pngData bytes.Buffer
	if err := png.Encode(&pngData, solid(300, 200)); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cat.png", pngData.Bytes(), ""))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", w.Code, w.Body.String())
	}
	m := decode(t, w)
	id := m["id"].(string)
	if m["url"] != "/api/uploads/"+id {
		t.Errorf("url = %v", m["url"])
	}

	w = do(r, http.MethodGet, "/api/uploads/"+id, nil, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("get = %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	body := []byte(`{"uploadId":"` + id + `","slots":[{"id":"top","text":"hi"}]}`)
	w = do(r, http.MethodPost, "/api/export", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("export size = %v", b)
	}

	// Replacing releases the previous upload.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "dog.png", pngData.Bytes(), id))
	if w.Code != http.StatusCreated {
		t.Fatalf("replace status = %d", w.Code)
	}
	next := decode(t, w)["id"].(string)
	if w = do(r, http.MethodGet, "/api/uploads/"+id, nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("replaced upload still served: %d", w.Code)
	}

	if w = do(r, http.MethodDelete, "/api/uploads/"+next, nil, nil); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w = do(r, http.MethodDelete, "/api/uploads/"+next, nil, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d", w.Code)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	r := newTestRouter(New(Deps{}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "notes.txt", []byte("hello"), ""))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}
