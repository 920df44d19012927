// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/refgraph/pkg/types"
)

const paperColumns = `id, title, author, abstract, year, doi, journal,
	file_path, content_text, processed, origin, created_at`

// CreatePaper inserts a paper record. A missing ID is filled with a new
// UUID and a missing CreatedAt with the current time; both are written
// back to the argument.
func (s *Store) CreatePaper(ctx context.Context, p *types.Paper) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Origin == "" {
		p.Origin = types.OriginUploaded
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (id, title, author, abstract, year, doi, journal,
			file_path, content_text, processed, origin, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Author, p.Abstract, p.Year, p.DOI, p.Journal,
		p.FilePath, p.ContentText, p.Processed, string(p.Origin),
		p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting paper: %w", err)
	}
	return nil
}

// GetPaper fetches one paper by ID. Returns ErrNotFound when absent.
func (s *Store) GetPaper(ctx context.Context, id string) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id = ?`, id)
	return scanPaper(row)
}

// UpdatePaperContent stores extracted text and the processed flag.
func (s *Store) UpdatePaperContent(ctx context.Context, id, contentText string, processed bool) error {
	n, err := s.execContext(ctx,
		`UPDATE papers SET content_text = ?, processed = ? WHERE id = ?`,
		contentText, processed, id)
	if err != nil {
		return fmt.Errorf("updating paper content: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePaperFile records the local document path for a paper.
func (s *Store) UpdatePaperFile(ctx context.Context, id, filePath string, origin types.PaperOrigin) error {
	n, err := s.execContext(ctx,
		`UPDATE papers SET file_path = ?, origin = ? WHERE id = ?`,
		filePath, string(origin), id)
	if err != nil {
		return fmt.Errorf("updating paper file: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByExactTitle returns the first paper whose title equals title,
// case-insensitively. Returns ErrNotFound when absent.
func (s *Store) FindByExactTitle(ctx context.Context, title string) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers
		 WHERE LOWER(title) = LOWER(?) ORDER BY created_at LIMIT 1`, title)
	return scanPaper(row)
}

// FindByTitleAuthor returns the first paper matching both a title substring
// and an author substring, case-insensitively.
func (s *Store) FindByTitleAuthor(ctx context.Context, titleSub, authorSub string) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers
		 WHERE LOWER(title) LIKE LOWER(?) AND LOWER(author) LIKE LOWER(?)
		 ORDER BY created_at LIMIT 1`,
		like(titleSub), like(authorSub))
	return scanPaper(row)
}

// FindByAuthorYear returns the first paper matching an author substring and
// an exact year.
func (s *Store) FindByAuthorYear(ctx context.Context, authorSub string, year int) (*types.Paper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers
		 WHERE LOWER(author) LIKE LOWER(?) AND year = ?
		 ORDER BY created_at LIMIT 1`,
		like(authorSub), year)
	return scanPaper(row)
}

// SearchPapersByKeyword returns up to limit papers whose title, abstract,
// or content contains the keyword, excluding the given IDs.
func (s *Store) SearchPapersByKeyword(ctx context.Context, keyword string, limit int, exclude []string) ([]types.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers
		WHERE (LOWER(title) LIKE LOWER(?) OR LOWER(abstract) LIKE LOWER(?)
			OR LOWER(content_text) LIKE LOWER(?))`
	args := []any{like(keyword), like(keyword), like(keyword)}

	for _, id := range exclude {
		query += ` AND id != ?`
		args = append(args, id)
	}
	query += ` ORDER BY created_at LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}
	defer rows.Close()
	return scanPapers(rows)
}

// ListPapers returns every paper, oldest first.
func (s *Store) ListPapers(ctx context.Context) ([]types.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+paperColumns+` FROM papers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()
	return scanPapers(rows)
}

// PaperCount is one row of a most-referenced or most-cited ranking.
type PaperCount struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Count  int    `json:"count" yaml:"count"`
}

// Stats summarizes the paper corpus and its citation graph.
type Stats struct {
	TotalPapers       int          `json:"total_papers" yaml:"total_papers"`
	ProcessedPapers   int          `json:"processed_papers" yaml:"processed_papers"`
	SynthesizedPapers int          `json:"synthesized_papers" yaml:"synthesized_papers"`
	ExternalPapers    int          `json:"external_papers" yaml:"external_papers"`
	TotalReferences   int          `json:"total_references" yaml:"total_references"`
	TotalChunks       int          `json:"total_chunks" yaml:"total_chunks"`
	TopReferenced     []PaperCount `json:"top_referenced" yaml:"top_referenced"`
	TopCiting         []PaperCount `json:"top_citing" yaml:"top_citing"`
}

// GraphStats computes corpus totals and the ten most referenced and most
// citing papers.
func (s *Store) GraphStats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM papers`, &st.TotalPapers},
		{`SELECT COUNT(*) FROM papers WHERE processed = 1`, &st.ProcessedPapers},
		{`SELECT COUNT(*) FROM papers WHERE origin = 'synthesized'`, &st.SynthesizedPapers},
		{`SELECT COUNT(*) FROM papers WHERE origin = 'external'`, &st.ExternalPapers},
		{`SELECT COUNT(*) FROM paper_refs`, &st.TotalReferences},
		{`SELECT COUNT(*) FROM chunks`, &st.TotalChunks},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("counting: %w", err)
		}
	}

	var err error
	st.TopReferenced, err = s.topPapers(ctx, "target_id")
	if err != nil {
		return Stats{}, err
	}
	st.TopCiting, err = s.topPapers(ctx, "source_id")
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *Store) topPapers(ctx context.Context, column string) ([]PaperCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.title, p.author, COUNT(*) AS n
		 FROM paper_refs r JOIN papers p ON p.id = r.`+column+`
		 GROUP BY r.`+column+` ORDER BY n DESC, p.title LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("ranking papers: %w", err)
	}
	defer rows.Close()

	var out []PaperCount
	for rows.Next() {
		var pc PaperCount
		if err := rows.Scan(&pc.Title, &pc.Author, &pc.Count); err != nil {
			return nil, fmt.Errorf("scanning ranking row: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaper(row rowScanner) (*types.Paper, error) {
	var (
		p         types.Paper
		abstract  sql.NullString
		year      sql.NullInt64
		doi       sql.NullString
		journal   sql.NullString
		filePath  sql.NullString
		content   sql.NullString
		origin    string
		createdAt string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Author, &abstract, &year, &doi,
		&journal, &filePath, &content, &p.Processed, &origin, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning paper: %w", err)
	}

	p.Abstract = abstract.String
	p.Year = int(year.Int64)
	p.DOI = doi.String
	p.Journal = journal.String
	p.FilePath = filePath.String
	p.ContentText = content.String
	p.Origin = types.PaperOrigin(origin)
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		p.CreatedAt = t
	}
	return &p, nil
}

func scanPapers(rows *sql.Rows) ([]types.Paper, error) {
	var out []types.Paper
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
