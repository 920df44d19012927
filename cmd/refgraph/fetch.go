// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refgraph/internal/fetch"
	"github.com/pdiddy/refgraph/internal/store"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [paper-ids...]",
	Short: "Download full-text PDFs for externally resolved papers",
	Long: `Fetch locates a PDF for each paper (CrossRef link for papers with a
DOI, arXiv title search otherwise), downloads it, and records the file
path. Run "papers process" afterwards to extract and chunk the text.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("dir", "", "download directory (default from config, papers/)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more paper ids")
	}

	cfg := loadConfig(cmd)
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Fetch.DownloadDir = dir
	}

	s, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	f := fetch.NewFetcher(s, cfg.Fetch, os.Stdout)

	failed := 0
	for _, id := range args {
		dest, err := f.Fetch(cmd.Context(), id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", id, err)
			failed++
			continue
		}
		fmt.Printf("fetched %s -> %s\n", id, dest)
	}

	if failed > 0 {
		return fmt.Errorf("%d paper(s) failed to fetch", failed)
	}
	return nil
}
