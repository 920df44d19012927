// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/refgraph/internal/httputil"
)

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// crossrefRows bounds how many candidates one query requests.
const crossrefRows = 5

// CrossrefBackend queries the CrossRef REST API by bibliographic query.
type CrossrefBackend struct {
	Client    *http.Client
	UserAgent string

	// MailTo, when set, is passed as the mailto parameter to route
	// requests through CrossRef's polite pool.
	MailTo string
}

// Name returns the backend identifier.
func (b *CrossrefBackend) Name() string { return "crossref" }

// Lookup queries CrossRef for works matching the citation's title and
// author and returns them in CrossRef's own relevance order.
func (b *CrossrefBackend) Lookup(ctx context.Context, title, author string) ([]Candidate, error) {
	params := url.Values{}
	params.Set("rows", fmt.Sprintf("%d", crossrefRows))
	if title != "" {
		params.Set("query.title", title)
	}
	if author != "" {
		params.Set("query.author", author)
	}
	if b.MailTo != "" {
		params.Set("mailto", b.MailTo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefAPIBase+"?"+params.Encode(), nil)
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
			Err: fmt.Errorf("CrossRef API returned HTTP %d", resp.StatusCode)}
	}

	var body crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &LookupError{Backend: b.Name(), Kind: KindPermanent,
			Err: fmt.Errorf("parsing CrossRef response: %w", err)}
	}

	var candidates []Candidate
	for _, item := range body.Message.Items {
		c := Candidate{
			DOI:      item.DOI,
			Abstract: strings.TrimSpace(item.Abstract),
		}
		if len(item.Title) > 0 {
			c.Title = strings.TrimSpace(item.Title[0])
		}
		if c.Title == "" {
			continue
		}
		c.Author = joinCrossrefAuthors(item.Authors)
		c.Year = crossrefYear(item)
		if len(item.Container) > 0 {
			c.Journal = strings.TrimSpace(item.Container[0])
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// CrossRef works response structures, limited to the fields used.
type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	DOI       string            `json:"DOI"`
	Title     []string          `json:"title"`
	Container []string          `json:"container-title"`
	Abstract  string            `json:"abstract"`
	Authors   []crossrefAuthor  `json:"author"`
	Published crossrefDateParts `json:"published-print"`
	Issued    crossrefDateParts `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDateParts struct {
	DateParts [][]int `json:"date-parts"`
}

func joinCrossrefAuthors(authors []crossrefAuthor) string {
	var parts []string
	for _, a := range authors {
		name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
		if name != "" {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

// crossrefYear prefers the print publication date and falls back to the
// issued date.
func crossrefYear(item crossrefItem) int {
	for _, dp := range [][][]int{item.Published.DateParts, item.Issued.DateParts} {
		if len(dp) > 0 && len(dp[0]) > 0 {
			return dp[0][0]
		}
	}
	return 0
}
