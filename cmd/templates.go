package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"meme-generator/config"
	"meme-generator/models"
	"meme-generator/service"
)

var (
	templatesAll   bool
	templatesQuery string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List meme templates from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := service.NewCatalogClient(cfg.CatalogURL, cfg.FetchTimeout)
		return runTemplates(cmd.Context(), cmd.OutOrStdout(), client, cfg.PageSize, cfg.PageIncrement)
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.Flags().BoolVar(&templatesAll, "all", false, "List the whole catalog instead of the first page")
	templatesCmd.Flags().StringVarP(&templatesQuery, "query", "q", "", "Fuzzy search template names")
}

func runTemplates(ctx context.Context, out io.Writer, client service.CatalogClientInterface, pageSize, pageIncrement int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session := service.NewEditorSession(client, service.SessionOptions{PageSize: pageSize, PageIncrement: pageIncrement})
	if err := session.Load(ctx); err != nil {
		return err
	}

	if templatesAll {
		session.ShowAll()
	}

	snapshot := session.Snapshot()
	list := snapshot.Catalog.Visible
	if templatesQuery != "" {
		list = session.Search(templatesQuery)
	}

	md := templatesMarkdown(list, snapshot.Catalog)
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width, _, err := term.GetSize(int(f.Fd()))
		if err != nil || width <= 0 {
			width = 100
		}
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}
	_, err := fmt.Fprint(out, md)
	return err
}

// templatesMarkdown renders a template list as a markdown table
func templatesMarkdown(list []models.Template, catalog models.CatalogView) string {
	var b strings.Builder
	b.WriteString("# Meme templates\n\n")
	if len(list) == 0 {
		b.WriteString("No templates available.\n")
		return b.String()
	}

	b.WriteString("| ID | Name | Size | Boxes |\n")
	b.WriteString("|----|------|------|-------|\n")
	for _, t := range list {
		name := strings.ReplaceAll(t.Name, "|", `\|`)
		fmt.Fprintf(&b, "| %s | %s | %dx%d | %d |\n", t.ID, name, t.Width, t.Height, t.BoxCount)
	}
	fmt.Fprintf(&b, "\nShowing %d of %d templates.", len(list), catalog.TotalCount)
	if catalog.HasMore && templatesQuery == "" {
		b.WriteString(" Use --all to list everything.")
	}
	b.WriteString("\n")
	return b.String()
}
