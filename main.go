package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/config"
)

var rootCmd = &cobra.Command{
	Use:           "pwaicons",
	Short:         "Generate installable web app icons from a logo",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "YAML config file")
	flags.StringP("source", "s", "", "Source logo image")
	flags.StringP("out", "o", "", "Output directory")
	flags.String("background", "", "Background color (#RRGGBB or CSS name)")
	flags.IntSlice("sizes", nil, "Icon sizes in pixels, comma separated")
	flags.Float64("padding", 0, "Margin on each side as a fraction of the icon edge")
	flags.String("filter", "", "Resampling filter (lanczos, catmullrom, box, linear)")
	flags.Bool("favicon", false, "Also write a multi-size favicon.ico")
	flags.Bool("manifest", false, "Also write a manifest icons fragment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the configuration from defaults, the optional config
// file and any flags set on the command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("background") {
		cfg.Background, _ = flags.GetString("background")
	}
	if flags.Changed("sizes") {
		cfg.Sizes, _ = flags.GetIntSlice("sizes")
	}
	if flags.Changed("padding") {
		cfg.Padding, _ = flags.GetFloat64("padding")
	}
	if flags.Changed("filter") {
		cfg.Filter, _ = flags.GetString("filter")
	}
	if flags.Changed("favicon") {
		cfg.Favicon.Enabled, _ = flags.GetBool("favicon")
	}
	if flags.Changed("manifest") {
		cfg.Manifest.Enabled, _ = flags.GetBool("manifest")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
