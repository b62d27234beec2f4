package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/memezzz/internal/catalog"
	"github.com/cristianadrielbraun/memezzz/internal/server"
)

func (c *CLI) templatesCommand() *cobra.Command {
	var asJSON, check bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the template catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cat, gallery, err := server.LoadCatalog(cfg)
			if err != nil {
				return err
			}

			if check {
				problems := append(catalog.Validate(cat), catalog.ValidateGallery(gallery, cat)...)
				for _, p := range problems {
					c.Logger.Error(p)
				}
				if len(problems) > 0 {
					return fmt.Errorf("catalog has %d problem(s)", len(problems))
				}
				c.Logger.Info("catalog ok", "templates", cat.Len(), "examples", len(gallery.Examples))
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(c.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat.All())
			}

			tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSIZE\tSLOTS\tMAX CHARS")
			for _, t := range cat.All() {
				fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%d\t%d\n", t.ID, t.Name, t.Width, t.Height, len(t.TextAreas), t.CaptionLimit())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().BoolVar(&check, "check", false, "validate the catalog and example gallery")
	return cmd
}
