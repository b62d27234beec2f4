package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/config"
	"github.com/cristianadrielbraun/memezzz/internal/overlay"
	"github.com/cristianadrielbraun/memezzz/internal/server"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	template string
	texts    []string // captions in slot order
	output   string
	scale    int
	qrKind   string
	qrTarget string
	qrStyle  string
	qrLogo   string
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a meme to a PNG file",
		Long: `Render a catalog template with the given captions and write a PNG.

Captions fill the template's text slots in order; slots without a caption keep
their default text. With --qr the image is stamped with a sponsor or tip QR
code in the bottom-right corner.`,
		Example: `  memezzz render -t drake --text "Writing tests" --text "Shipping on Friday"
  memezzz render -t two-buttons --qr https://example.com -o sponsored.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id (default: first in the catalog)")
	cmd.Flags().StringArrayVar(&opts.texts, "text", nil, "caption for the next slot (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: generated name in the current directory)")
	cmd.Flags().IntVar(&opts.scale, "scale", 0, "output scale factor (default from config)")
	cmd.Flags().StringVar(&opts.qrKind, "qr-kind", string(overlay.KindSponsor), "QR kind: sponsor or tip")
	cmd.Flags().StringVar(&opts.qrTarget, "qr", "", "sponsor URL or tip address to encode")
	cmd.Flags().StringVar(&opts.qrStyle, "qr-style", overlay.DefaultStyleID, "QR colour style")
	cmd.Flags().StringVar(&opts.qrLogo, "qr-logo", overlay.DefaultLogo, "logo in the centre of sponsor QR codes")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.scale != 0 {
		if err := config.ValidateExportScale(opts.scale); err != nil {
			return err
		}
		cfg.ExportScale = opts.scale
	}

	cat, _, err := server.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	tpl := cat.First()
	if opts.template != "" {
		t, ok := cat.Get(opts.template)
		if !ok {
			return fmt.Errorf("unknown template %q", opts.template)
		}
		tpl = t
	}
	if tpl == nil {
		return fmt.Errorf("template catalog is empty")
	}

	e := compositor.NewEditor(tpl)
	for i, slot := range e.Slots() {
		if i >= len(opts.texts) {
			break
		}
		e.SetText(slot.ID, opts.texts[i])
	}
	if len(opts.texts) > len(tpl.TextAreas) {
		c.Logger.Warn("extra captions ignored", "slots", len(tpl.TextAreas), "captions", len(opts.texts))
	}

	renderer, err := server.NewRenderer(cfg)
	if err != nil {
		return err
	}
	scene := e.Scene()

	if opts.qrTarget != "" {
		qcfg := overlay.Config{
			Enabled: true,
			Kind:    overlay.Kind(opts.qrKind),
			Target:  opts.qrTarget,
			Style:   opts.qrStyle,
			Logo:    opts.qrLogo,
		}
		if err := overlay.Validate(qcfg); err != nil {
			return err
		}
		size := int(math.Round(float64(tpl.Width*renderer.Scale) * compositor.QRFraction))
		qr, err := overlay.Render(qcfg, cfg.PublicBaseURL, size)
		if err != nil {
			return err
		}
		scene.Overlay = qr
	}

	start := time.Now()
	img, err := renderer.Render(cmd.Context(), scene)
	if err != nil {
		return err
	}
	data, err := compositor.EncodePNG(img)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = compositor.Filename(tpl.Name, time.Now())
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	c.Logger.Info("rendered", "template", tpl.ID, "file", out, "bytes", len(data), "took", time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(c.Out, out)
	return nil
}
