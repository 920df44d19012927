// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Inspect and export the paper graph",
}

var papersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all papers",
	RunE:  runPapersList,
}

var papersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graph statistics",
	RunE:  runPapersStats,
}

var papersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export papers and reference edges",
	RunE:  runPapersExport,
}

var papersProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract text and chunk every unprocessed paper",
	RunE:  runPapersProcess,
}

func init() {
	papersExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	papersCmd.AddCommand(papersListCmd, papersStatsCmd, papersExportCmd, papersProcessCmd)
	rootCmd.AddCommand(papersCmd)
}

func runPapersList(cmd *cobra.Command, args []string) error {
	_, s, _, err := openEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	papers, err := s.ListPapers(cmd.Context())
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		fmt.Println("no papers in the store")
		return nil
	}

	for _, p := range papers {
		year := ""
		if p.Year > 0 {
			year = fmt.Sprintf(" (%d)", p.Year)
		}
		fmt.Printf("%s  %s%s by %s [%s]\n", p.ID, p.Title, year, p.Author, p.Origin)
	}
	return nil
}

func runPapersStats(cmd *cobra.Command, args []string) error {
	_, s, _, err := openEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.GraphStats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("papers:     %d (%d processed, %d external, %d synthesized)\n",
		stats.TotalPapers, stats.ProcessedPapers, stats.ExternalPapers, stats.SynthesizedPapers)
	fmt.Printf("references: %d\n", stats.TotalReferences)
	fmt.Printf("chunks:     %d\n", stats.TotalChunks)

	if len(stats.TopReferenced) > 0 {
		fmt.Println("\nmost referenced:")
		for _, pc := range stats.TopReferenced {
			fmt.Printf("  %3d  %s\n", pc.Count, pc.Title)
		}
	}
	if len(stats.TopCiting) > 0 {
		fmt.Println("\nmost citations made:")
		for _, pc := range stats.TopCiting {
			fmt.Printf("  %3d  %s\n", pc.Count, pc.Title)
		}
	}
	return nil
}

func runPapersExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	_, s, _, err := openEngine(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	switch format {
	case "yaml":
		return s.ExportYAML(cmd.Context(), os.Stdout)
	case "json":
		return s.ExportJSON(cmd.Context(), os.Stdout)
	default:
		return fmt.Errorf("unknown export format %q (yaml or json)", format)
	}
}

func runPapersProcess(cmd *cobra.Command, args []string) error {
	e, s, _, err := openEngine(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	sum, err := e.ProcessAll(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("processed %d paper(s), %d failed\n", sum.Processed, sum.Failed)
	if sum.Failed > 0 {
		return fmt.Errorf("%d paper(s) failed processing", sum.Failed)
	}
	return nil
}
