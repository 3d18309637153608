package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"meme-generator/app"
	"meme-generator/config"
	"meme-generator/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Edit a meme in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("tui requires an interactive terminal")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a, err := app.Initialize(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		p := tea.NewProgram(tui.New(a.Session, a.Export, wd), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
