package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var contentFile string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a content file and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := contentFile
			if len(args) == 1 {
				path = args[0]
			}
			c, err := loadContent(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := path
			if source == "" {
				source = "built-in content"
			}
			fmt.Fprintf(out, "%s: ok\n", source)
			fmt.Fprintf(out, "owner: %s\n", c.Site.Owner)
			fmt.Fprintf(out, "sections: %d education, %d skills, %d projects, %d experience\n",
				len(c.Education), len(c.Skills), len(c.Projects), len(c.Experience))

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPING\tPHRASES\tLOOP\tSPEED")
			for _, name := range c.TypingNames() {
				cfg, _ := c.TypingConfig(name)
				fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", name, len(cfg.Phrases), cfg.Loop, cfg.TypingSpeed)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&contentFile, "content", defaultContentFile(), "Content YAML file (default: built-in)")
	return cmd
}
