package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/icons"
	"github.com/S4ng4/GCA-Digital-Wine-List-WPA/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the icon set whenever the source logo changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	g, err := icons.NewGenerator(cfg)
	if err != nil {
		return err
	}

	// A bad source at startup is reported but not fatal; fixing the file
	// triggers the next build.
	if _, err := g.Run(); err != nil {
		log.Printf("Initial generation failed: %v", err)
	}

	w, err := watcher.NewWatcher(cfg.Source, func() error {
		_, err := g.Run()
		return err
	})
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}

	log.Println("Press Ctrl+C to stop")

	go func() {
		for event := range w.Events() {
			if event.Err == nil {
				log.Printf("🔁 Rebuilt icons after %s change", event.Type)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	return w.Stop()
}
