package model

// Pair is a trading pair as returned by the DexScreener API.
type Pair struct {
	ChainID       string       `json:"chainId"`
	DexID         string       `json:"dexId"`
	URL           string       `json:"url"`
	PairAddress   string       `json:"pairAddress"`
	BaseToken     Token        `json:"baseToken"`
	QuoteToken    QuoteToken   `json:"quoteToken"`
	PriceNative   string       `json:"priceNative"`
	PriceUSD      *string      `json:"priceUsd,omitempty"`
	Txns          Transactions `json:"txns"`
	Volume        Buckets      `json:"volume"`
	PriceChange   Buckets      `json:"priceChange"`
	Liquidity     *Liquidity   `json:"liquidity,omitempty"`
	FDV           *float64     `json:"fdv,omitempty"`
	PairCreatedAt *int64       `json:"pairCreatedAt,omitempty"`
}

// Token identifies the base token of a pair.
type Token struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// QuoteToken carries the quote side of a pair. Only the symbol is used.
type QuoteToken struct {
	Symbol string `json:"symbol"`
}

// Transactions holds buy/sell counts per time bucket.
type Transactions struct {
	M5  BuySell `json:"m5"`
	H1  BuySell `json:"h1"`
	H6  BuySell `json:"h6"`
	H24 BuySell `json:"h24"`
}

type BuySell struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Buckets holds a value per time bucket (volume or percent price change).
type Buckets struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Liquidity is the value locked in the pool.
type Liquidity struct {
	USD   *float64 `json:"usd,omitempty"`
	Base  float64  `json:"base"`
	Quote float64  `json:"quote"`
}

// Symbol returns the concatenated base and quote symbols, e.g. "HONEYSOL".
func (p Pair) Symbol() string {
	return p.BaseToken.Symbol + p.QuoteToken.Symbol
}
