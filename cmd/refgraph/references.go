// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refgraph/internal/citeparse"
)

var referencesCmd = &cobra.Command{
	Use:   "references [paper-id]",
	Short: "Extract citations and build reference graph edges",
	Long: `References parses citations from a paper's text, resolves each cited
work to a paper record (matching locally, then querying CrossRef and
arXiv, then synthesizing a placeholder), and records directed edges.

With --recursive, newly created cited papers are themselves extracted,
down to --max-depth levels. With --all, every paper in the store is
processed; one paper's failure does not stop the batch.`,
	RunE: runReferences,
}

func init() {
	referencesCmd.Flags().Bool("recursive", false, "extract references of newly found papers")
	referencesCmd.Flags().Int("max-depth", 0, "recursion depth bound (default from config, 3)")
	referencesCmd.Flags().Bool("all", false, "process every paper in the store")
	referencesCmd.Flags().Bool("dry-run", false, "print parsed citations without creating papers or edges")

	rootCmd.AddCommand(referencesCmd)
}

func runReferences(cmd *cobra.Command, args []string) error {
	recursive, _ := cmd.Flags().GetBool("recursive")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	all, _ := cmd.Flags().GetBool("all")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if !all && len(args) != 1 {
		return fmt.Errorf("provide a paper id, or --all for every paper")
	}

	e, s, cfg, err := openEngine(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	if maxDepth <= 0 {
		maxDepth = cfg.Graph.MaxDepth
	}
	ctx := cmd.Context()

	if dryRun {
		if all {
			return fmt.Errorf("--dry-run requires a single paper id")
		}
		p, err := s.GetPaper(ctx, args[0])
		if err != nil {
			return err
		}
		refs := citeparse.Parse(p.ContentText)
		fmt.Printf("%d citation(s) in %q:\n", len(refs), p.Title)
		for _, r := range refs {
			title := r.Title
			if title == "" {
				title = "(no title)"
			}
			fmt.Printf("  %s (%d) %s\n", r.Author, r.Year, title)
		}
		return nil
	}

	if all {
		sum, err := e.ExtractAllReferences(ctx, recursive, maxDepth)
		if err != nil {
			return err
		}
		fmt.Printf("extracted references for %d paper(s), %d failed\n", sum.Processed, sum.Failed)
		if sum.Failed > 0 {
			return fmt.Errorf("%d paper(s) failed extraction", sum.Failed)
		}
		return nil
	}

	stats, err := e.ExtractReferences(ctx, args[0], recursive, maxDepth)
	if err != nil {
		return err
	}
	fmt.Printf("visited %d paper(s): %d citation(s), %d new edge(s), %d new paper(s)\n",
		stats.PapersVisited, stats.CitationsSeen, stats.EdgesCreated, stats.PapersCreated)
	return nil
}
