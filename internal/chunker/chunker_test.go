// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func words(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "w%d ", i)
	}
	return b.String()
}

// ceilChunks is the expected chunk count for w words: with stride
// size-overlap, ceil((w-overlap)/(size-overlap)) for w > overlap.
func ceilChunks(w, size, overlap int) int {
	stride := size - overlap
	return (w - overlap + stride - 1) / stride
}

func TestSplit_ChunkCount(t *testing.T) {
	tests := []struct {
		w, size, overlap int
	}{
		{1000, 1000, 200},
		{1001, 1000, 200},
		{1800, 1000, 200},
		{1801, 1000, 200},
		{2600, 1000, 200},
		{5000, 1000, 200},
		{50, 20, 5},
		{100, 30, 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("w=%d size=%d overlap=%d", tt.w, tt.size, tt.overlap), func(t *testing.T) {
			chunks := Split(words(tt.w), tt.size, tt.overlap)
			want := ceilChunks(tt.w, tt.size, tt.overlap)
			if len(chunks) != want {
				t.Errorf("got %d chunks, want %d", len(chunks), want)
			}
			for i, c := range chunks {
				if n := len(strings.Fields(c)); n > tt.size {
					t.Errorf("chunk %d has %d words, max %d", i, n, tt.size)
				}
			}
		})
	}
}

func TestSplit_Overlap(t *testing.T) {
	const size, overlap = 20, 5
	chunks := Split(words(100), size, overlap)
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1])
		cur := strings.Fields(chunks[i])
		if len(prev) < size {
			continue
		}
		tail := prev[len(prev)-overlap:]
		head := cur[:overlap]
		for j := range tail {
			if tail[j] != head[j] {
				t.Fatalf("chunks %d and %d do not share %d words: %v vs %v",
					i-1, i, overlap, tail, head)
			}
		}
	}
}

func TestSplit_SequentialCoverage(t *testing.T) {
	// Every word must appear in at least one chunk.
	text := words(77)
	chunks := Split(text, 20, 5)
	joined := " " + strings.Join(chunks, " ") + " "
	for _, w := range strings.Fields(text) {
		if !strings.Contains(joined, " "+w+" ") {
			t.Errorf("word %q missing from chunks", w)
		}
	}
}

func TestSplit_ShortText(t *testing.T) {
	chunks := Split("just a few words", 1000, 200)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "just a few words" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := Split("   \n\t  ", 1000, 200); len(chunks) != 0 {
		t.Errorf("got %d chunks from blank text", len(chunks))
	}
}

func TestSplit_BadArguments(t *testing.T) {
	// Nonsensical sizes fall back rather than panic.
	if chunks := Split(words(10), 0, 0); len(chunks) == 0 {
		t.Error("zero chunk size should fall back to a default")
	}
	if chunks := Split(words(10), 5, 9); len(chunks) == 0 {
		t.Error("overlap >= size should fall back to no overlap")
	}
}
