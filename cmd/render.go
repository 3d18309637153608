package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"meme-generator/config"
	"meme-generator/recipe"
	"meme-generator/service"
)

var (
	renderRecipe string
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a meme from a YAML recipe",
	Example: `  meme-generator render -f drake.yaml -o drake.png

  # drake.yaml
  template: "181913649"
  captions:
    - text: "writing Go"
      x: 160
      y: 40`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		r, err := recipe.Load(renderRecipe)
		if err != nil {
			return err
		}

		canvas := service.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight)
		fetcher := service.NewHTTPImageFetcher(cfg.FetchTimeout)
		var rasterizer service.Rasterizer
		if cfg.Rasterizer == config.RasterizerChrome {
			rasterizer = service.NewChromeRasterizer(canvas, cfg.ChromePath, cfg.ExportTimeout)
		} else {
			native, err := service.NewNativeRasterizer(fetcher, cfg.FontPath)
			if err != nil {
				return err
			}
			defer native.Close()
			rasterizer = native
		}

		client := service.NewCatalogClient(cfg.CatalogURL, cfg.FetchTimeout)
		return runRender(cmd.Context(), client, canvas, rasterizer, r, renderOutput, cfg)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderRecipe, "file", "f", "", "Recipe YAML file")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "meme.png", "Output PNG path")
	renderCmd.MarkFlagRequired("file")
}

func runRender(ctx context.Context, client service.CatalogClientInterface, canvas *service.Canvas, rasterizer service.Rasterizer, r *recipe.Recipe, output string, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session := service.NewEditorSession(client, service.SessionOptions{
		PageSize:      cfg.PageSize,
		PageIncrement: cfg.PageIncrement,
	})
	if err := session.Load(ctx); err != nil {
		return err
	}
	if err := r.Apply(session); err != nil {
		return err
	}

	exporter := service.NewExportService(session, canvas, rasterizer, cfg.ExportTimeout)
	result, err := exporter.Download(ctx)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("nothing to render: template %s was not selected", r.Template)
	}

	if err := os.WriteFile(output, result.PNG, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	log.Printf("✓ Meme written to %s", output)
	return nil
}
