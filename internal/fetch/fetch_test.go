// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(types.StoreConfig{DBPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFetch_CrossrefPDFLink(t *testing.T) {
	const pdfBody = "%PDF-1.4 fake"

	mux := http.NewServeMux()
	mux.HandleFunc("/works/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":{"link":[
			{"URL":"`+crossrefWorksBase+`pdf/paper.pdf","content-type":"application/pdf"},
			{"URL":"https://example.org/landing","content-type":"text/html"}
		]}}`)
	})
	mux.HandleFunc("/works/pdf/paper.pdf", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, pdfBody)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	orig := crossrefWorksBase
	crossrefWorksBase = srv.URL + "/works/"
	defer func() { crossrefWorksBase = orig }()

	s := newTestStore(t)
	ctx := context.Background()
	p := &types.Paper{Title: "Fetched Paper", Author: "A", DOI: "10.5555/777", Origin: types.OriginExternal}
	require.NoError(t, s.CreatePaper(ctx, p))

	dir := t.TempDir()
	f := NewFetcher(s, types.FetchConfig{DownloadDir: dir}, io.Discard)
	f.client = srv.Client()

	dest, err := f.Fetch(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, p.ID+".pdf"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(data))

	got, err := s.GetPaper(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, dest, got.FilePath)
}

func TestFetch_ArxivFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		io.WriteString(w, `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><id>http://arxiv.org/abs/2301.07041v2</id></entry>
</feed>`)
	})
	mux.HandleFunc("/pdf/2301.07041", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "%PDF data")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	origQuery, origPDF := arxivQueryBase, arxivPDFBase
	arxivQueryBase = srv.URL + "/query"
	arxivPDFBase = srv.URL + "/pdf/"
	defer func() { arxivQueryBase, arxivPDFBase = origQuery, origPDF }()

	s := newTestStore(t)
	ctx := context.Background()
	// No DOI: discovery goes straight to the arXiv title search.
	p := &types.Paper{Title: "Sparse Retrieval Revisited", Author: "B", Origin: types.OriginExternal}
	require.NoError(t, s.CreatePaper(ctx, p))

	f := NewFetcher(s, types.FetchConfig{DownloadDir: t.TempDir()}, io.Discard)
	f.client = srv.Client()

	dest, err := f.Fetch(ctx, p.ID)
	require.NoError(t, err)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF data", string(data))
}

func TestFetch_SynthesizedRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := &types.Paper{Title: "Placeholder", Author: "C", Origin: types.OriginSynthesized, Processed: true}
	require.NoError(t, s.CreatePaper(ctx, p))

	f := NewFetcher(s, types.FetchConfig{DownloadDir: t.TempDir()}, io.Discard)
	_, err := f.Fetch(ctx, p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}

func TestFetch_SkipsExistingFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	existing := filepath.Join(t.TempDir(), "have.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF"), 0o644))

	p := &types.Paper{Title: "Already Here", Author: "D", FilePath: existing, Origin: types.OriginUploaded}
	require.NoError(t, s.CreatePaper(ctx, p))

	f := NewFetcher(s, types.FetchConfig{}, io.Discard)
	dest, err := f.Fetch(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, dest)
}

func TestArxivID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://example.org/nothing", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, arxivID(tt.in), tt.in)
	}
}
