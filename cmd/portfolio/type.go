package main

import (
	"fmt"
	"strings"

	"github.com/Zachkp/portfolio/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTypeCmd() *cobra.Command {
	var (
		contentFile string
		noLoop      bool
	)

	cmd := &cobra.Command{
		Use:   "type <name>",
		Short: "Play a typing sequence in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			c, err := loadContent(contentFile)
			if err != nil {
				return err
			}
			cfg, ok := c.TypingConfig(name)
			if !ok {
				return fmt.Errorf("unknown typing sequence %q (available: %s)", name, strings.Join(c.TypingNames(), ", "))
			}
			if noLoop {
				cfg.Loop = false
			}

			m, err := tui.New(name, cfg, nil)
			if err != nil {
				return err
			}
			defer m.Close()

			p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running preview: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentFile, "content", defaultContentFile(), "Content YAML file (default: built-in)")
	cmd.Flags().BoolVar(&noLoop, "no-loop", false, "Play the sequence once")
	return cmd
}
