package model

// PairIdentity is the persisted mapping from a token to its resolved pair.
//
// ChainID is stored but is not part of the duplicate rule: two records on
// different chains with the same symbols and addresses collide.
type PairIdentity struct {
	ChainID      string `toml:"chain_id" json:"chain_id"`
	BaseSymbol   string `toml:"base_token_symbol" json:"base_token_symbol"`
	QuoteSymbol  string `toml:"quote_token_symbol" json:"quote_token_symbol"`
	TokenAddress string `toml:"address" json:"address"`
	PairAddress  string `toml:"pair_address" json:"pair_address"`
}

// IdentityFromPair extracts the persisted identity of a remote pair.
func IdentityFromPair(p Pair) PairIdentity {
	return PairIdentity{
		ChainID:      p.ChainID,
		BaseSymbol:   p.BaseToken.Symbol,
		QuoteSymbol:  p.QuoteToken.Symbol,
		TokenAddress: p.BaseToken.Address,
		PairAddress:  p.PairAddress,
	}
}

// SameAs reports whether other is a duplicate of p.
func (p PairIdentity) SameAs(other PairIdentity) bool {
	return p.BaseSymbol == other.BaseSymbol &&
		p.QuoteSymbol == other.QuoteSymbol &&
		p.TokenAddress == other.TokenAddress &&
		p.PairAddress == other.PairAddress
}

// Matches reports whether key equals any of the lookup fields. Case-sensitive.
func (p PairIdentity) Matches(key string) bool {
	return p.TokenAddress == key ||
		p.PairAddress == key ||
		p.BaseSymbol == key ||
		p.QuoteSymbol == key
}

// Identifies reports whether key names this record's own token or pair: the
// token address, pair address or base symbol. A quote symbol alone does not.
func (p PairIdentity) Identifies(key string) bool {
	return p.TokenAddress == key ||
		p.PairAddress == key ||
		p.BaseSymbol == key
}
