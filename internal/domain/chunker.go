package domain

import "strings"

// DefaultMaxChunkWords is the embedding sub-chunk size used when no
// explicit limit is configured.
const DefaultMaxChunkWords = 250

// WordChunker splits text into word-bounded chunks for embedding.
type WordChunker interface {
	Chunk(text string) []string
	MaxWords() int
}

type wordChunker struct {
	maxWords int
}

// NewWordChunker creates a chunker that packs at most maxWords words per
// chunk. Non-positive maxWords falls back to DefaultMaxChunkWords.
func NewWordChunker(maxWords int) WordChunker {
	if maxWords <= 0 {
		maxWords = DefaultMaxChunkWords
	}
	return &wordChunker{maxWords: maxWords}
}

func (c *wordChunker) MaxWords() int {
	return c.maxWords
}

// Chunk splits the text on whitespace and groups consecutive words into
// chunks. There is no overlap and the final partial chunk is kept, so
// joining all chunks with single spaces reconstructs the
// whitespace-normalized input.
func (c *wordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+c.maxWords-1)/c.maxWords)
	for i := 0; i < len(words); i += c.maxWords {
		end := i + c.maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
