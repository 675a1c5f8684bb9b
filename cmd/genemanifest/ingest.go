package main

import (
	"fmt"

	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/ingest"
	"github.com/hupe1980/genemanifest/internal/lineio"
	"github.com/hupe1980/genemanifest/manifest"
	"github.com/spf13/cobra"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list <bucket> <prefix>",
	Short: "Write the object keys under a prefix, one per line",
	Long: `Lists every object below bucket/prefix and writes one key per line.
Directory placeholders are skipped. The output is compressed when its name
ends in .gz, .zst or .lz4.`,
	Args: cobra.ExactArgs(2),
	RunE: runList,
}

var buildCmd = &cobra.Command{
	Use:   "build <keys> <manifest>",
	Short: "Build a manifest from a key list",
	Long: `Reads newline-delimited object paths (use - for stdin; .gz, .zst and .lz4
inputs are decompressed) and writes the manifest as Parquet.`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

var generateCmd = &cobra.Command{
	Use:   "generate <bucket> <prefix> <manifest>",
	Short: "List a prefix and build its manifest in one step",
	Args:  cobra.ExactArgs(3),
	RunE:  runGenerate,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "-", "Output file (- for stdout)")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to open object store: %w", err)
	}

	if listOutput == "-" {
		_, err := blobstore.WriteKeys(ctx, store, args[0], args[1], cmd.OutOrStdout(), logger)
		return err
	}

	w, err := lineio.Create(listOutput)
	if err != nil {
		return err
	}
	if _, err := blobstore.WriteKeys(ctx, store, args[0], args[1], w, logger); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func runBuild(cmd *cobra.Command, args []string) error {
	r, err := lineio.Open(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	stats, err := manifest.Generate(cmd.Context(), r, args[1], generateOptions()...)
	if err != nil {
		return err
	}
	printStats(cmd, args[1], stats)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to open object store: %w", err)
	}

	stats, err := manifest.GenerateFromBucket(ctx, store, args[0], args[1], args[2], generateOptions()...)
	if err != nil {
		return err
	}
	printStats(cmd, args[2], stats)
	return nil
}

func generateOptions() []func(*manifest.GenerateOptions) {
	return []func(*manifest.GenerateOptions){
		manifest.WithPattern(cfg.Ingest.Pattern),
		manifest.WithCompression(cfg.Ingest.Compression),
		manifest.WithIngestOptions(append(cfg.IngestOptions(), ingest.WithLogger(logger))...),
		manifest.WithGenerateLogger(logger),
	}
}

func printStats(cmd *cobra.Command, dest string, stats ingest.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Manifest:       %s\n", dest)
	fmt.Fprintf(out, "Lines:          %d\n", stats.Lines)
	fmt.Fprintf(out, "Valid:          %d\n", stats.Valid)
	fmt.Fprintf(out, "Invalid:        %d\n", stats.Invalid)
	fmt.Fprintf(out, "Row group size: %d\n", stats.RowGroupSize)
	fmt.Fprintf(out, "Elapsed:        %s\n", stats.Elapsed)
}
