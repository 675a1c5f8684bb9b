package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/genemanifest/blobstore"
	"github.com/hupe1980/genemanifest/lookup"
	"github.com/hupe1980/genemanifest/manifest"
	"github.com/spf13/cobra"
)

var (
	queryGene   string
	queryTissue string
	queryExists bool
	dataBucket  string
)

var queryCmd = &cobra.Command{
	Use:   "query <manifest>",
	Short: "Print the records matching a gene and/or tissue",
	Long: `Prints the records matching every given filter. At least one of --gene and
--tissue is required. Tissues may be given as 12, tissue_12 or model_tissue_12.

Examples:
  genemanifest query manifest.parquet --gene BRCA1
  genemanifest query manifest.parquet --gene BRCA1 --tissue 7 --exists`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var uniqueCmd = &cobra.Command{
	Use:       "unique <manifest> genes|tissues",
	Short:     "Print the distinct genes or tissues of a manifest",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"genes", "tissues"},
	RunE:      runUnique,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <manifest> <gene> <tissue>",
	Short: "Download the file of a gene/tissue pair into the cache and print its path",
	Args:  cobra.ExactArgs(3),
	RunE:  runFetch,
}

func init() {
	queryCmd.Flags().StringVar(&queryGene, "gene", "", "Gene identifier")
	queryCmd.Flags().StringVar(&queryTissue, "tissue", "", "Tissue identifier")
	queryCmd.Flags().BoolVar(&queryExists, "exists", false, "Only print whether a match exists")

	fetchCmd.Flags().StringVar(&dataBucket, "data-bucket", "", "Bucket holding bare keys (default: the manifest's bucket)")
}

// openManifest opens source, wiring the object cache when the source or its
// records may live remotely.
func openManifest(ctx context.Context, source string, needCache bool) (*manifest.Lookup, error) {
	opts := []func(*manifest.Options){manifest.WithLogger(logger)}

	if _, remote := blobstore.ParseURI(source); remote || needCache {
		c, err := openCache(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, manifest.WithCache(c))
	}
	if dataBucket != "" {
		opts = append(opts, manifest.WithDataBucket(dataBucket))
	}
	return manifest.Open(ctx, source, opts...)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	gene, tissue := lookup.None(), lookup.None()
	if cmd.Flags().Changed("gene") {
		gene = lookup.Some(queryGene)
	}
	if cmd.Flags().Changed("tissue") {
		tissue = lookup.Some(queryTissue)
	}

	m, err := openManifest(ctx, args[0], false)
	if err != nil {
		return err
	}
	defer m.Close()

	recs, err := m.Query(ctx, gene, tissue)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if queryExists {
		fmt.Fprintln(out, len(recs) > 0)
		return nil
	}
	for _, r := range recs {
		fmt.Fprintf(out, "%s\t%d\t%s\n", r.GeneID, r.TissueID, r.FilePath)
	}
	return nil
}

func runUnique(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := openManifest(ctx, args[0], false)
	if err != nil {
		return err
	}
	defer m.Close()

	out := cmd.OutOrStdout()
	switch args[1] {
	case "genes":
		genes, err := m.Genes(ctx)
		if err != nil {
			return err
		}
		for _, g := range genes {
			fmt.Fprintln(out, g)
		}
	case "tissues":
		tissues, err := m.Tissues(ctx)
		if err != nil {
			return err
		}
		for _, t := range tissues {
			fmt.Fprintln(out, t)
		}
	default:
		return fmt.Errorf("unknown column set %q (want genes or tissues)", args[1])
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := openManifest(ctx, args[0], true)
	if err != nil {
		return err
	}
	defer m.Close()

	path, ok, err := m.FilePath(ctx, args[1], args[2])
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no record for gene %s and tissue %s", args[1], args[2])
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
