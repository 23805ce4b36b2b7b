package matchers

import (
	"github.com/walteh/tokscan/pkg/tokenizer"
)

var _ tokenizer.Resetter = (*Chunk)(nil)

// Chunk splits text into groups of n scalars of any kind. The last group
// holds whatever remains.
type Chunk struct {
	n    int
	size int
}

func NewChunk(n int) *Chunk {
	return &Chunk{n: n}
}

func (c *Chunk) CanTake(rune) bool {
	c.size++
	return c.size <= c.n
}

func (c *Chunk) Reset() {
	c.size = 0
}

func (c *Chunk) Name() string { return "chunk" }
