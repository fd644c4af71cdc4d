package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_EmptyInput(t *testing.T) {
	chunker := NewTextChunker()
	assert.Empty(t, chunker.ChunkText("", 1000, 200))
}

func TestChunkText_SmallInputIsOneChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Employees accrue 1.5 vacation days per month.", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "vacation days")
}

func TestChunkText_SplitsWithOverlap(t *testing.T) {
	chunker := NewTextChunker()

	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("Section text about leave policy and payroll rules.\n\n")
	}

	chunks := chunker.ChunkText(b.String(), 120, 30)
	require.Greater(t, len(chunks), 1)

	// each later chunk starts with the tail of the previous one
	for i := 1; i < len(chunks); i++ {
		prevTail := lastNRunes(chunks[i-1], 30)
		assert.True(t, strings.HasPrefix(chunks[i], prevTail),
			"chunk %d should start with the previous chunk's tail", i)
	}
}
