// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citeparse

import (
	"strings"
	"testing"
)

func TestParse_InitialsEtAl(t *testing.T) {
	refs := Parse("Smith, J. et al. (2023) AI Tutoring Systems in Education.")
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	r := refs[0]
	if r.Author != "Smith, J. et al." {
		t.Errorf("author = %q", r.Author)
	}
	if r.Year != 2023 {
		t.Errorf("year = %d", r.Year)
	}
	if r.Title != "AI Tutoring Systems in Education." {
		t.Errorf("title = %q", r.Title)
	}
}

func TestParse_PatternFamilies(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAuthor string
		wantYear   int
		wantTitle  string
	}{
		{
			name:       "author year title",
			text:       "Johnson (2015) Adaptive Testing in Large Classrooms.",
			wantAuthor: "Johnson",
			wantYear:   2015,
			wantTitle:  "Adaptive Testing in Large Classrooms.",
		},
		{
			name:       "initials",
			text:       "Garcia, M. (2018) Feedback Loops in Online Courses.",
			wantAuthor: "Garcia, M.",
			wantYear:   2018,
			wantTitle:  "Feedback Loops in Online Courses.",
		},
		{
			name:       "and conjunction",
			text:       "Patel, R. and Kumar, S. (2020) Collaborative Annotation Tools.",
			wantAuthor: "Patel, R. and Kumar, S.",
			wantYear:   2020,
			wantTitle:  "Collaborative Annotation Tools.",
		},
		{
			name:       "ampersand",
			text:       "Weber & Klein (2017) Longitudinal Retention Effects.",
			wantAuthor: "Weber & Klein",
			wantYear:   2017,
			wantTitle:  "Longitudinal Retention Effects.",
		},
		{
			name:       "numbered bibliography",
			text:       "[7] Tanaka, H. (2012) Peer Review at Scale in Universities.",
			wantAuthor: "Tanaka, H.",
			wantYear:   2012,
			wantTitle:  "Peer Review at Scale in Universities.",
		},
		{
			name:       "bare author year",
			text:       "as discussed by Morrison (2019) in several venues",
			wantAuthor: "Morrison",
			wantYear:   2019,
			wantTitle:  "",
		},
		{
			name:       "parenthetical comma form",
			text:       "performance improves with scale (Kaplan et al., 2020) across tasks",
			wantAuthor: "Kaplan et al.",
			wantYear:   2020,
			wantTitle:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := Parse(tt.text)
			if len(refs) == 0 {
				t.Fatal("no refs parsed")
			}
			r := refs[0]
			if r.Author != tt.wantAuthor {
				t.Errorf("author = %q, want %q", r.Author, tt.wantAuthor)
			}
			if r.Year != tt.wantYear {
				t.Errorf("year = %d, want %d", r.Year, tt.wantYear)
			}
			if r.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", r.Title, tt.wantTitle)
			}
		})
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"year too early", "Newton (1687) Philosophiae Naturalis Principia."},
		{"year boundary low", "Planck (1900) Quantum Hypothesis Foundations."},
		{"year boundary high", "Future (2030) Speculative Work on Everything."},
		{"stoplisted title", "Anderson (2015) Supplementary."},
		{"short author", "Li (2019) Short Author Names Are Rejected Here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, r := range Parse(tt.text) {
				if r.Title != "" {
					t.Errorf("invalid tuple accepted: %+v", r)
				}
			}
		})
	}
}

func TestParse_DedupFirstWins(t *testing.T) {
	// Same (author, year) with two different titles collapses to the
	// first occurrence.
	text := "Brown, T. (2020) Language Models as Few-Shot Learners. " +
		"Later, Brown, T. (2020) Scaling Laws Revisited Again."
	refs := Parse(text)
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	if refs[0].Title != "Language Models as Few-Shot Learners." {
		t.Errorf("title = %q, want first occurrence", refs[0].Title)
	}
}

func TestParse_DedupAcrossFamilies(t *testing.T) {
	// The titled family and the bare family both match this citation;
	// the dedup key keeps only the titled tuple.
	text := "Keller (2016) Spaced Repetition and Recall Performance."
	refs := Parse(text)
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	if refs[0].Title == "" {
		t.Error("titled family should win over the bare family")
	}
}

func TestParse_Context(t *testing.T) {
	pre := strings.Repeat("x ", 150)
	text := pre + "the key result follows Rivera (2021) Important Findings on Memory. more trailing words here"
	refs := Parse(text)
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}
	ctx := refs[0].Context
	if !strings.Contains(ctx, "the key result follows") {
		t.Errorf("context missing preceding text: %q", ctx)
	}
	if !strings.Contains(ctx, "more trailing words") {
		t.Errorf("context missing following text: %q", ctx)
	}
	if strings.Contains(ctx, "\n") {
		t.Error("context not whitespace-normalized")
	}
	if len(ctx) > 2*contextWindow+len(refs[0].Matched) {
		t.Errorf("context too long: %d chars", len(ctx))
	}
}

func TestParse_EmptyText(t *testing.T) {
	if refs := Parse(""); len(refs) != 0 {
		t.Errorf("got %d refs from empty text", len(refs))
	}
}
