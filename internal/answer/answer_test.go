// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		question string
		want     Intent
	}{
		{"Why do students use mobile devices?", IntentReasons},
		{"How is the data collected?", IntentMethods},
		{"Summarize the key results", IntentFindings},
		{"What is mobile learning", IntentDefinition},
		{"Compare the two papers", IntentGeneral},
		// Priority order: an earlier category wins even when a later
		// category's keyword is also present.
		{"Why use this method?", IntentReasons},
		{"How do the results look?", IntentMethods},
	}
	for _, tc := range cases {
		if got := Classify(tc.question); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func TestExtractContent_SelectsRelevantSentences(t *testing.T) {
	chunks := []string{
		"Mobile devices support learning in classrooms. Gardening requires patience and quality soil. Short bit.",
	}
	got := ExtractContent(chunks, "mobile learning benefits")

	if !strings.Contains(got, "Mobile devices support learning in classrooms") {
		t.Errorf("relevant sentence missing from %q", got)
	}
	if strings.Contains(got, "Gardening") {
		t.Errorf("irrelevant sentence kept: %q", got)
	}
	if strings.Contains(got, "Short bit") {
		t.Errorf("short fragment kept: %q", got)
	}
}

func TestExtractContent_ConceptPairMatch(t *testing.T) {
	// No direct keyword overlap: the sentence says "device", the question
	// says "mobile". The concept pairing should still pick it up.
	chunks := []string{"Each device was registered before the trial began."}
	got := ExtractContent(chunks, "mobile usage")

	if !strings.Contains(got, "Each device was registered") {
		t.Errorf("concept-pair sentence missing from %q", got)
	}
}

func TestExtractContent_CapsSentences(t *testing.T) {
	var sentences []string
	for i := 0; i < 8; i++ {
		sentences = append(sentences, "Mobile learning outcomes were observed in every cohort here.")
	}
	got := ExtractContent([]string{strings.Join(sentences, " ")}, "mobile learning")

	if n := strings.Count(got, "Mobile learning outcomes"); n != maxSentences {
		t.Errorf("kept %d sentences, want %d", n, maxSentences)
	}
}

func TestExtractContent_FallbackJoinsChunks(t *testing.T) {
	chunks := []string{"Gardening requires patience and quality soil.", "Compost improves drainage in raised beds."}
	got := ExtractContent(chunks, "quantum decoherence")

	want := strings.Join(chunks, " ")
	if got != want {
		t.Errorf("fallback = %q, want full chunk text %q", got, want)
	}
}

func TestCompose_TemplatePerIntent(t *testing.T) {
	cases := []struct {
		question string
		heading  string
	}{
		{"Why do students use mobile devices?", "**Main Reasons:**"},
		{"How is the data collected?", "**Methods and Approaches:**"},
		{"Summarize the key results", "**Research Findings:**"},
		{"What is mobile learning", "**Key Information:**"},
		{"Compare the two papers", "**Relevant Information:**"},
	}
	for _, tc := range cases {
		got := Compose(tc.question, "the extracted content", "Mobile Learning", "Chen, L.")
		if !strings.Contains(got, tc.heading) {
			t.Errorf("Compose(%q): missing heading %q in %q", tc.question, tc.heading, got)
		}
		if !strings.Contains(got, `"Mobile Learning"`) || !strings.Contains(got, "Chen, L.") {
			t.Errorf("Compose(%q): paper attribution missing", tc.question)
		}
		if !strings.Contains(got, "the extracted content") {
			t.Errorf("Compose(%q): content body missing", tc.question)
		}
	}
}

func TestCompose_GeneralEchoesQuestion(t *testing.T) {
	got := Compose("Compare the two papers", "content", "T", "A")
	if !strings.Contains(got, `"Compare the two papers"`) {
		t.Errorf("general template should quote the question: %q", got)
	}
}

func TestNoContent(t *testing.T) {
	got := NoContent("Mobile Learning", "why?")
	if !strings.Contains(got, `"Mobile Learning"`) || !strings.Contains(got, `"why?"`) {
		t.Errorf("NoContent missing title or question: %q", got)
	}
}

func TestNoMatchNetwork(t *testing.T) {
	got := NoMatchNetwork("Start Paper")
	if !strings.Contains(got, `"Start Paper"`) {
		t.Errorf("NoMatchNetwork missing start title: %q", got)
	}
}

func TestComposeCross_SortsAndCapsPapers(t *testing.T) {
	papers := []PaperExtract{
		{Title: "Alpha Study", Author: "Ames", Year: 2020, Score: 1.0,
			Chunks: []string{"Mobile devices improve learning outcomes in classrooms."}},
		{Title: "Beta Study", Author: "Best", Year: 2021, Score: 3.0,
			Chunks: []string{"Mobile learning adoption grew across all regions surveyed."}},
		{Title: "Gamma Study", Author: "Gray", Year: 2019, Score: 2.0,
			Chunks: []string{"Students prefer mobile learning for revision sessions."}},
		{Title: "Delta Study", Author: "Dunn", Year: 2018, Score: 0.5,
			Chunks: []string{"Mobile learning remains a niche practice in some fields."}},
	}

	got := ComposeCross("mobile learning", papers)

	if !strings.Contains(got, "analysis of 4 relevant papers") {
		t.Errorf("paper count missing: %q", got)
	}
	beta := strings.Index(got, "Beta Study")
	gamma := strings.Index(got, "Gamma Study")
	alpha := strings.Index(got, "Alpha Study")
	if beta == -1 || gamma == -1 || alpha == -1 {
		t.Fatalf("expected top three papers in output: %q", got)
	}
	if !(beta < gamma && gamma < alpha) {
		t.Errorf("papers not ordered by score: beta=%d gamma=%d alpha=%d", beta, gamma, alpha)
	}
	if strings.Contains(got, "Delta Study") {
		t.Errorf("fourth paper should be cut: %q", got)
	}

	// Input order must survive: ComposeCross sorts a copy.
	if papers[0].Title != "Alpha Study" {
		t.Errorf("input slice reordered")
	}
}

func TestComposeCross_KeyPointLimit(t *testing.T) {
	papers := []PaperExtract{
		{Title: "Alpha Study", Author: "Ames", Year: 2020, Score: 2.0, Chunks: []string{
			"Mobile learning improved attendance in the first trial group. " +
				"Mobile learning improved retention in the second trial group. " +
				"Mobile learning improved engagement in the third trial group.",
		}},
		{Title: "Beta Study", Author: "Best", Year: 2021, Score: 1.0,
			Chunks: []string{"Mobile learning adoption grew across all regions surveyed."}},
	}

	got := ComposeCross("mobile learning", papers)

	if !strings.Contains(got, "first trial group") || !strings.Contains(got, "second trial group") {
		t.Errorf("expected two key points for the top paper: %q", got)
	}
	if strings.Contains(got, "third trial group") {
		t.Errorf("more than two key points kept for one paper: %q", got)
	}
}

func TestComposeCross_Insights(t *testing.T) {
	papers := []PaperExtract{
		{Title: "Alpha Study", Author: "Ames", Year: 2020, Score: 2.0,
			Chunks: []string{"The survey method captured mobile learning habits over a full term.", "x", "y"}},
		{Title: "Beta Study", Author: "Best", Year: 2021, Score: 1.0,
			Chunks: []string{"Researchers found that mobile learning lifted test scores overall.", "x", "y"}},
	}

	got := ComposeCross("mobile learning", papers)

	if !strings.Contains(got, "**Cross-paper insights:**") {
		t.Fatalf("insights section missing: %q", got)
	}
	if !strings.Contains(got, "similar methodologies") {
		t.Errorf("methodology insight missing: %q", got)
	}
	if !strings.Contains(got, "findings and discoveries") {
		t.Errorf("findings insight missing: %q", got)
	}
	// Six chunks total across two papers.
	if !strings.Contains(got, "active area of research") {
		t.Errorf("coverage insight missing: %q", got)
	}
}

func TestComposeCross_SinglePaperNoInsights(t *testing.T) {
	papers := []PaperExtract{
		{Title: "Alpha Study", Author: "Ames", Year: 2020, Score: 1.0,
			Chunks: []string{"Mobile learning improved attendance in the first trial group."}},
	}
	got := ComposeCross("mobile learning", papers)
	if strings.Contains(got, "Cross-paper insights") {
		t.Errorf("insights shown for a single paper: %q", got)
	}
}

func TestComposeNetwork_AnnotatesRelationships(t *testing.T) {
	papers := []PaperExtract{
		{Title: "Cited Work", Author: "Ames", Year: 2017, Relationship: "cited by main paper", Score: 1.0,
			Chunks: []string{"Mobile learning shaped the original study design throughout."}},
	}

	got := ComposeNetwork("mobile learning", "Start Paper", papers)

	if !strings.Contains(got, `reference network starting from "Start Paper"`) {
		t.Errorf("network header missing: %q", got)
	}
	if !strings.Contains(got, "**Cited Work** (Ames, 2017) - cited by main paper:") {
		t.Errorf("relationship annotation missing: %q", got)
	}
}
