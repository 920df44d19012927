// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch locates and downloads full-text PDFs for papers that
// were resolved from external metadata. Discovery tries the CrossRef
// work record for a direct PDF link, then an arXiv title search.
package fetch

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/refgraph/internal/httputil"
	"github.com/pdiddy/refgraph/internal/store"
	"github.com/pdiddy/refgraph/pkg/types"
)

// API endpoints, declared as vars so tests can substitute httptest
// servers.
var (
	crossrefWorksBase = "https://api.crossref.org/works/"
	arxivQueryBase    = "https://export.arxiv.org/api/query"
	arxivPDFBase      = "https://arxiv.org/pdf/"
)

// Fetcher downloads paper PDFs into a local directory.
type Fetcher struct {
	store    *store.Store
	client   *http.Client
	cfg      types.FetchConfig
	progress io.Writer
}

// NewFetcher returns a fetcher writing progress lines to w; pass
// io.Discard to silence them.
func NewFetcher(s *store.Store, cfg types.FetchConfig, w io.Writer) *Fetcher {
	if w == nil {
		w = io.Discard
	}
	return &Fetcher{
		store:    s,
		client:   httputil.NewClient(cfg.HTTPConfig),
		cfg:      cfg,
		progress: w,
	}
}

// Fetch finds and downloads the PDF for the paper, records the file
// path, and returns the path. Papers that already have a file are
// skipped.
func (f *Fetcher) Fetch(ctx context.Context, paperID string) (string, error) {
	p, err := f.store.GetPaper(ctx, paperID)
	if err != nil {
		return "", fmt.Errorf("loading paper: %w", err)
	}

	if p.FilePath != "" {
		if _, statErr := os.Stat(p.FilePath); statErr == nil {
			fmt.Fprintf(f.progress, "skipped %q: file already present\n", p.Title)
			return p.FilePath, nil
		}
	}
	if p.Origin == types.OriginSynthesized {
		return "", fmt.Errorf("%q is a synthesized placeholder with no full text", p.Title)
	}

	pdfURL, err := f.discover(ctx, p)
	if err != nil {
		return "", err
	}

	dir := f.cfg.DownloadDir
	if dir == "" {
		dir = "papers"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	dest := filepath.Join(dir, p.ID+".pdf")
	fmt.Fprintf(f.progress, "downloading %q\n", p.Title)
	if err := f.download(ctx, pdfURL, dest); err != nil {
		return "", fmt.Errorf("downloading %q: %w", p.Title, err)
	}

	if err := f.store.UpdatePaperFile(ctx, p.ID, dest, p.Origin); err != nil {
		return "", err
	}
	return dest, nil
}

// discover returns a PDF URL for the paper: the CrossRef work record's
// PDF link when a DOI is known, else the first arXiv title match.
func (f *Fetcher) discover(ctx context.Context, p *types.Paper) (string, error) {
	if p.DOI != "" {
		if pdfURL, err := f.crossrefPDFLink(ctx, p.DOI); err != nil {
			fmt.Fprintf(f.progress, "  CrossRef link lookup failed: %v\n", err)
		} else if pdfURL != "" {
			return pdfURL, nil
		}
	}

	pdfURL, err := f.arxivPDFLink(ctx, p.Title)
	if err != nil {
		return "", fmt.Errorf("no PDF source found for %q: %w", p.Title, err)
	}
	if pdfURL == "" {
		return "", fmt.Errorf("no PDF source found for %q", p.Title)
	}
	return pdfURL, nil
}

// crossrefPDFLink returns the application/pdf link of a CrossRef work,
// or empty when the record carries none.
func (f *Fetcher) crossrefPDFLink(ctx context.Context, doi string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefWorksBase+url.PathEscape(doi), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)
	}

	var body struct {
		Message struct {
			Links []struct {
				URL         string `json:"URL"`
				ContentType string `json:"content-type"`
			} `json:"link"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("parsing CrossRef response: %w", err)
	}

	for _, l := range body.Message.Links {
		if l.ContentType == "application/pdf" {
			return l.URL, nil
		}
	}
	return "", nil
}

// arxivPDFLink searches arXiv by title and returns the PDF URL of the
// first result, or empty when nothing matches.
func (f *Fetcher) arxivPDFLink(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", nil
	}
	query := "ti:" + strings.Join(strings.Fields(title), "+")
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=1", arxivQueryBase, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed struct {
		Entries []struct {
			ID string `xml:"id"`
		} `xml:"entry"`
	}
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return "", fmt.Errorf("parsing arXiv response: %w", err)
	}
	if len(feed.Entries) == 0 {
		return "", nil
	}

	id := arxivID(feed.Entries[0].ID)
	if id == "" {
		return "", nil
	}
	return arxivPDFBase + id, nil
}

// arxivID extracts the bare identifier from an entry URL, stripping any
// version suffix ("http://arxiv.org/abs/2301.07041v1" gives "2301.07041").
func arxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		allDigits := vIdx+1 < len(id)
		for _, r := range id[vIdx+1:] {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			id = id[:vIdx]
		}
	}
	return id
}

// download writes the response body to a temp file and renames it into
// place, so a failed transfer never leaves a partial PDF behind.
func (f *Fetcher) download(ctx context.Context, srcURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, srcURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
