// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refgraph/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from paper content",
	Long: `Ask retrieves the most relevant text chunks and renders a templated
answer. With --paper the question is answered from that paper alone;
with --paper and --network it is answered over the paper's reference
network; with neither it is answered across the whole corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("paper", "", "paper id to ask about")
	askCmd.Flags().Bool("network", false, "search the paper's reference network (requires --paper)")
	askCmd.Flags().Int("depth", 2, "network hop limit")
	askCmd.Flags().String("session", "", "session identifier for conversation history")
	askCmd.Flags().Bool("json", false, "emit the full answer with chunk and source descriptors as JSON")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	paperID, _ := cmd.Flags().GetString("paper")
	network, _ := cmd.Flags().GetBool("network")
	depth, _ := cmd.Flags().GetInt("depth")
	session, _ := cmd.Flags().GetString("session")
	asJSON, _ := cmd.Flags().GetBool("json")

	if network && paperID == "" {
		return fmt.Errorf("--network requires --paper")
	}

	// Progress lines go to stderr so --json output stays parseable.
	var progress io.Writer = os.Stderr
	e, s, _, err := openEngine(cmd, progress)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	question := args[0]

	var ans *types.Answer
	switch {
	case network:
		ans, err = e.AskNetwork(ctx, paperID, question, session, depth)
	case paperID != "":
		ans, err = e.Ask(ctx, paperID, question, session)
	default:
		ans, err = e.AskAcross(ctx, question, session)
	}
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ans)
	}

	fmt.Println(ans.Text)
	if len(ans.Sources) > 0 {
		fmt.Printf("\nSources (%d):\n", len(ans.Sources))
		for _, src := range ans.Sources {
			fmt.Printf("  [%s, %s] %s\n", src.PaperTitle, src.PaperAuthor, src.ContentPreview)
		}
	}
	return nil
}
