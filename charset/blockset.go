package charset

import "fmt"

// blockSetWords is sized to comfortably cover every defined Tag with room
// to grow; bump it if blockCount ever exceeds 128.
const blockSetWords = 2

// BlockSet is a bitset over block tags representing the user-selected
// blocks. The zero value is an empty set; NewBlockSet always adds
// BasicLatin, which is always present regardless of selection.
type BlockSet struct {
	words [blockSetWords]uint64
}

// aliasAll is the CLI-facing name that selects every defined block.
const aliasAll = "All"

// NewBlockSet builds a BlockSet from block names, recognizing "All" as an
// alias for every defined block. BasicLatin is always included.
func NewBlockSet(names ...string) (BlockSet, error) {
	var bs BlockSet
	for _, n := range names {
		if n == aliasAll {
			for t := Tag(0); t < blockCount; t++ {
				bs.add(t)
			}
			continue
		}
		tag, ok := TagByName(n)
		if !ok {
			return BlockSet{}, fmt.Errorf("charset: unknown block %q", n)
		}
		bs.add(tag)
	}
	bs.add(BasicLatin)
	return bs, nil
}

func (bs *BlockSet) add(t Tag) {
	word, bit := int(t)/64, uint(t)%64
	bs.words[word] |= 1 << bit
}

// Contains reports whether tag is a member of the set.
func (bs BlockSet) Contains(t Tag) bool {
	if int(t) >= blockSetWords*64 {
		return false
	}
	word, bit := int(t)/64, uint(t)%64
	return bs.words[word]&(1<<bit) != 0
}

// AcceptsContinuation implements the block-run policy for a character seen
// after the first one in a run: the candidate block must be
// selected in this set AND compatible (BasicLatin/LatinExtensions
// equivalence, or equality) with the block that opened the run.
func (bs BlockSet) AcceptsContinuation(runBlock, candidate Tag) bool {
	return bs.Contains(candidate) && Compatible(runBlock, candidate)
}
