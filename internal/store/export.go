// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refgraph/pkg/types"
)

// Export holds a full snapshot of the citation graph: every paper (without
// its raw text) and every reference edge.
type Export struct {
	Papers     []types.Paper     `json:"papers" yaml:"papers"`
	References []types.Reference `json:"references" yaml:"references"`
}

// buildExport assembles the snapshot. Raw content text is dropped to keep
// exports small; everything else round-trips.
func (s *Store) buildExport(ctx context.Context) (Export, error) {
	papers, err := s.ListPapers(ctx)
	if err != nil {
		return Export{}, err
	}
	for i := range papers {
		papers[i].ContentText = ""
	}

	var refs []types.Reference
	for _, p := range papers {
		out, err := s.OutgoingRefs(ctx, p.ID)
		if err != nil {
			return Export{}, err
		}
		refs = append(refs, out...)
	}

	return Export{Papers: papers, References: refs}, nil
}

// ExportYAML writes the graph snapshot as YAML to w.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	export, err := s.buildExport(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the graph snapshot as indented JSON to w.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	export, err := s.buildExport(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
