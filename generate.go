package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/icons"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the icon set once",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, err := icons.NewGenerator(cfg)
	if err != nil {
		return err
	}

	written, err := g.Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nIcons created in '%s/' folder:\n", cfg.OutputDir)
	for _, icon := range written {
		fmt.Fprintf(out, "  • %s\n", icons.IconName(icon.Size))
	}
	return nil
}
