package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/genemanifest"
	"github.com/hupe1980/genemanifest/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *genemanifest.Logger
)

var rootCmd = &cobra.Command{
	Use:   "genemanifest",
	Short: "Build and query gene/tissue manifests",
	Long: `genemanifest builds compact Parquet manifests that map (gene_id, tissue_id)
pairs to model files, and answers lookups against them.

Examples:
  genemanifest list my-bucket studies/ad/ -o keys.txt.gz
  genemanifest build keys.txt.gz manifest.parquet
  genemanifest generate my-bucket studies/ad/ manifest.parquet
  genemanifest query s3://my-bucket/manifest.parquet --gene BRCA1
  genemanifest fetch manifest.parquet BRCA1 model_tissue_7`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		cfg = loaded
		logger = cfg.Logger()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(uniqueCmd)
	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
