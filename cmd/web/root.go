package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vivekananda.org/vivek-web/internal/config"
)

var (
	cfgFile   string
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vivek-web",
	Short: "Bilingual site of the Vivekananda Vedanta Centre",
	Long: `vivek-web serves the bilingual (English/Bangla) site of the Vivekananda Vedanta
Centre. Meetings, events and gallery come from a JSON content document; the
contact form is relayed by email.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("templates", "", "templates directory")
	rootCmd.PersistentFlags().String("public", "", "public assets directory")
	rootCmd.PersistentFlags().String("content", "", "content document: file path or http(s) URL")
	rootCmd.AddCommand(serveCmd, exportCmd)
}

// flagKeys maps persistent flags onto configuration keys.
var flagKeys = map[string]string{
	"templates": "paths.templates",
	"public":    "paths.public",
	"content":   "content.source",
	"addr":      "server.addr",
	"dev":       "server.dev",
}

func initializeConfig(cmd *cobra.Command) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}
