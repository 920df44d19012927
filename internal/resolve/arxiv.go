// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/refgraph/internal/httputil"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivBackend queries the arXiv Atom API by title.
type ArxivBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Lookup searches arXiv by title and returns at most one candidate, the
// first entry of the feed. arXiv ranks by relevance, and citations that
// reach this backend rarely have enough metadata to re-rank usefully.
func (b *ArxivBackend) Lookup(ctx context.Context, title, author string) ([]Candidate, error) {
	if title == "" {
		return nil, nil
	}

	terms := strings.Fields(title)
	query := "ti:" + strings.Join(terms, "+")
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=1", arxivAPIBase, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &LookupError{Backend: b.Name(), Kind: KindPermanent, Err: err}
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, &LookupError{Backend: b.Name(), Kind: KindTransient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := KindPermanent
		if resp.StatusCode >= 500 {
			kind = KindTransient
		}
		return nil, &LookupError{Backend: b.Name(), Kind: kind,
			Err: fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)}
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &LookupError{Backend: b.Name(), Kind: KindPermanent,
			Err: fmt.Errorf("parsing arXiv response: %w", err)}
	}

	if len(feed.Entries) == 0 {
		return nil, nil
	}

	entry := feed.Entries[0]
	c := Candidate{
		Title:    strings.Join(strings.Fields(entry.Title), " "),
		Abstract: strings.TrimSpace(entry.Summary),
		Journal:  "arXiv",
	}
	var names []string
	for _, a := range entry.Authors {
		names = append(names, strings.TrimSpace(a.Name))
	}
	c.Author = strings.Join(names, ", ")
	if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
		c.Year = t.Year()
	}
	return []Candidate{c}, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
