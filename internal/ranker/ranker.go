// Package ranker scores blocks by lexical overlap with the query keywords.
package ranker

import (
	"sort"

	"github.com/dshills/docsearch/internal/segment"
	"github.com/dshills/docsearch/pkg/types"
)

// Ranker computes Jaccard similarity between a block's token set and the
// keyword set
type Ranker struct {
	tokenizer segment.Tokenizer
}

// New creates a Ranker. A nil tokenizer selects segment.Default().
func New(tokenizer segment.Tokenizer) *Ranker {
	if tokenizer == nil {
		tokenizer = segment.Default()
	}
	return &Ranker{tokenizer: tokenizer}
}

// Score computes the similarity of block to keywords, stores it on the
// block and returns it. The result is in [0, 1] and is 0 when both sets are
// empty.
func (r *Ranker) Score(block *types.Block, keywords []string) float64 {
	tokens := toSet(r.tokenizer.Tokenize(block.Content))
	block.SimilarityScore = Jaccard(tokens, toSet(keywords))
	return block.SimilarityScore
}

// Rank scores every block and sorts them by descending score. Blocks with
// equal scores keep their input order.
func (r *Ranker) Rank(blocks []*types.Block, keywords []string) {
	for _, b := range blocks {
		r.Score(b, keywords)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].SimilarityScore > blocks[j].SimilarityScore
	})
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 for an empty union
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}

	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it != "" {
			set[it] = struct{}{}
		}
	}
	return set
}
