package main

import (
	"fmt"
	"os"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Personal portfolio site with animated typing",
		Long: `portfolio serves a single-page portfolio whose copy lives in a YAML
content file, and previews its typing animations in the terminal.

Examples:
  portfolio serve --content content.yaml --watch
  portfolio type hero
  portfolio check content.yaml`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(), newTypeCmd(), newCheckCmd())
	return rootCmd
}

// loadContent reads path, or the built-in content when path is empty.
func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return c, nil
}

func defaultContentFile() string {
	return os.Getenv("CONTENT_FILE")
}
