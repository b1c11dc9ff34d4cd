package storage

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

type pairSource []model.PairIdentity

func (s pairSource) Len() int {
	return len(s)
}

func (s pairSource) String(i int) string {
	p := s[i]
	return fmt.Sprintf("%s/%s %s %s %s", p.BaseSymbol, p.QuoteSymbol, p.ChainID, p.TokenAddress, p.PairAddress)
}

// FuzzyFind returns the records matching pattern, best match first.
// An empty pattern returns pairs unchanged.
func FuzzyFind(pairs []model.PairIdentity, pattern string) []model.PairIdentity {
	if pattern == "" {
		return pairs
	}
	matches := fuzzy.FindFrom(pattern, pairSource(pairs))
	out := make([]model.PairIdentity, 0, len(matches))
	for _, m := range matches {
		out = append(out, pairs[m.Index])
	}
	return out
}
