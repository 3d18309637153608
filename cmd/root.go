package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meme-generator",
	Short: "Create memes from a public template catalog",
	Long: `meme-generator fetches meme templates, lets you place captions on one
and exports the result as meme.png.

Usage:
  meme-generator              start the web editor (same as "serve")
  meme-generator templates    list templates
  meme-generator render       render a meme from a YAML recipe
  meme-generator tui          edit a meme in the terminal`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
