// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refgraph/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Add papers from PDF, DOCX, or text files and chunk them",
	Long: `Ingest creates a paper record for each file, extracts its text, and
splits it into retrieval chunks. Title and author metadata apply when a
single file is given; for batches the filename stem is used as the title.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("title", "", "paper title (single file only)")
	ingestCmd.Flags().String("author", "", "paper author")
	ingestCmd.Flags().Int("year", 0, "publication year")
	ingestCmd.Flags().String("abstract", "", "paper abstract")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more paper files (pdf, docx, or txt)")
	}

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	year, _ := cmd.Flags().GetInt("year")
	abstract, _ := cmd.Flags().GetString("abstract")
	if title != "" && len(args) > 1 {
		return fmt.Errorf("--title applies to a single file, got %d", len(args))
	}

	e, s, _, err := openEngine(cmd, os.Stdout)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	failed := 0
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, err)
			failed++
			continue
		}

		p := &types.Paper{
			Title:    title,
			Author:   author,
			Abstract: abstract,
			Year:     year,
			FilePath: path,
			Origin:   types.OriginUploaded,
		}
		if p.Title == "" {
			p.Title = titleFromFilename(path)
		}

		if err := s.CreatePaper(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", path, err)
			failed++
			continue
		}
		if err := e.ProcessPaper(ctx, p.ID); err != nil {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ingested %q (%s)\n", p.Title, p.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed ingestion", failed)
	}
	return nil
}

// titleFromFilename turns "papers/deep_learning-survey.pdf" into
// "deep learning survey".
func titleFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.Join(strings.Fields(stem), " ")
}
