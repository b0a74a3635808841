package ast

// arenaChunkWords is the bump-chunk granularity for word arrays.
const arenaChunkWords = 1024

// Arena owns the out-of-line storage of an expression tree: the word arrays
// backing large numeric literals and the byte buffers of character
// constants. Allocation is bump-style from chunks; individual releases only
// update accounting, the memory itself is reclaimed in bulk by Reset.
//
// One compilation thread populates the arena; after resolution completes it
// is treated as read-only.
type Arena struct {
	words  []uint64
	bytes  []byte
	chunks int

	wordAllocs   int
	wordReleases int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// allocWords returns a zeroed word array of length n.
func (a *Arena) allocWords(n int) []uint64 {
	if n <= 0 {
		fatalf("allocWords(%d)", n)
	}
	if n > arenaChunkWords {
		// Oversized request gets a dedicated chunk.
		a.chunks++
		a.wordAllocs++
		return make([]uint64, n)
	}
	if len(a.words)+n > cap(a.words) {
		a.words = make([]uint64, 0, arenaChunkWords)
		a.chunks++
	}
	w := a.words[len(a.words) : len(a.words)+n : len(a.words)+n]
	a.words = a.words[:len(a.words)+n]
	a.wordAllocs++
	return w
}

// releaseWords gives a word array back to the arena. The memory is not
// reused before Reset; the call keeps the live-allocation accounting exact
// so overwrite paths can be checked for leaks.
func (a *Arena) releaseWords(w []uint64) {
	if w == nil {
		return
	}
	a.wordReleases++
	if a.wordReleases > a.wordAllocs {
		fatalf("word array released twice")
	}
}

// allocBytes returns a byte buffer of length n owned by the arena.
func (a *Arena) allocBytes(n int) []byte {
	if n < 0 {
		fatalf("allocBytes(%d)", n)
	}
	if len(a.bytes)+n > cap(a.bytes) {
		c := arenaChunkWords * 8
		if n > c {
			c = n
		}
		a.bytes = make([]byte, 0, c)
		a.chunks++
	}
	b := a.bytes[len(a.bytes) : len(a.bytes)+n : len(a.bytes)+n]
	a.bytes = a.bytes[:len(a.bytes)+n]
	return b
}

// WordAllocs returns the total number of word-array allocations made.
func (a *Arena) WordAllocs() int { return a.wordAllocs }

// LiveWordAllocs returns the number of word arrays allocated and not yet
// released.
func (a *Arena) LiveWordAllocs() int { return a.wordAllocs - a.wordReleases }

// Reset releases every allocation at once. Nodes and storage handed out by
// this arena must not be used afterwards.
func (a *Arena) Reset() {
	tracer().Debugf("arena reset: %d chunks, %d live word arrays", a.chunks, a.LiveWordAllocs())
	*a = Arena{}
}
