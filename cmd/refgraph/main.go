// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refgraph CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refgraph/internal/engine"
	"github.com/pdiddy/refgraph/internal/graph"
	"github.com/pdiddy/refgraph/internal/httputil"
	"github.com/pdiddy/refgraph/internal/resolve"
	"github.com/pdiddy/refgraph/internal/secrets"
	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "refgraph/0.1"

// loadedSecrets holds keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if non-empty, else the loaded secret
// for key, else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the refgraph CLI.
var rootCmd = &cobra.Command{
	Use:   "refgraph",
	Short: "Citation graph and retrieval question answering for academic papers",
	Long: `refgraph ingests academic papers, extracts citations from their text to
build a directed reference graph, and answers natural-language questions
about paper content with a retrieval-then-template pipeline.

Each stage is a subcommand: ingest papers, extract references, ask
questions (per paper, across the corpus, or over a reference network),
and inspect or export the graph.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refgraph.yaml or ~/.config/refgraph/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (default refgraph.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refgraph")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refgraph"))
		}
	}

	viper.SetEnvPrefix("REFGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the component configuration from the config
// file, environment, and persistent flags.
func loadConfig(cmd *cobra.Command) types.Config {
	var cfg types.Config

	cfg.Store.DBPath = viper.GetString("store.db_path")
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.DBPath = db
	}

	cfg.Engine.ChunkSize = viper.GetInt("engine.chunk_size")
	cfg.Engine.ChunkOverlap = viper.GetInt("engine.chunk_overlap")
	cfg.Engine.TopK = viper.GetInt("engine.top_k")
	cfg.Engine.MaxPapers = viper.GetInt("engine.max_papers")
	cfg.Engine = cfg.Engine.WithDefaults()

	cfg.Graph.MaxDepth = viper.GetInt("graph.max_depth")
	if cfg.Graph.MaxDepth <= 0 {
		cfg.Graph.MaxDepth = 3
	}

	cfg.Lookup.Timeout = viper.GetDuration("lookup.timeout")
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 30 * time.Second
	}
	cfg.Lookup.UserAgent = defaultUserAgent
	cfg.Lookup.EnableCrossref = !viper.IsSet("lookup.enable_crossref") || viper.GetBool("lookup.enable_crossref")
	cfg.Lookup.EnableArxiv = !viper.IsSet("lookup.enable_arxiv") || viper.GetBool("lookup.enable_arxiv")
	cfg.Lookup.MailTo = secretDefault("crossref-email", viper.GetString("lookup.mailto"))

	cfg.Fetch.Timeout = viper.GetDuration("fetch.timeout")
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 60 * time.Second
	}
	cfg.Fetch.UserAgent = defaultUserAgent
	cfg.Fetch.DownloadDir = viper.GetString("fetch.download_dir")
	if cfg.Fetch.DownloadDir == "" {
		cfg.Fetch.DownloadDir = "papers"
	}

	return cfg
}

// lookupBackends builds the external resolution backends enabled by cfg.
func lookupBackends(cfg types.LookupConfig) []resolve.Backend {
	client := httputil.NewClient(cfg.HTTPConfig)

	var backends []resolve.Backend
	if cfg.EnableCrossref {
		backends = append(backends, &resolve.CrossrefBackend{
			Client:    client,
			UserAgent: cfg.UserAgent,
			MailTo:    cfg.MailTo,
		})
	}
	if cfg.EnableArxiv {
		backends = append(backends, &resolve.ArxivBackend{Client: client, UserAgent: cfg.UserAgent})
	}
	return backends
}

// openEngine opens the store and wires the resolver, graph builder, and
// engine. The caller must close the returned store.
func openEngine(cmd *cobra.Command, w io.Writer) (*engine.Engine, *store.Store, types.Config, error) {
	cfg := loadConfig(cmd)

	s, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("opening store: %w", err)
	}

	r := resolve.NewResolver(s, lookupBackends(cfg.Lookup), w)
	b := graph.NewBuilder(s, r, w)
	e := engine.New(s, b, cfg.Engine, w)
	return e, s, cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
