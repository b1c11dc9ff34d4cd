package model

import (
	"encoding/json"
	"testing"
)

const honeyPayload = `{
	"chainId": "solana",
	"dexId": "raydium",
	"url": "https://dexscreener.com/solana/2rvvkja9crhzzgplis1s5erudqf8zd3kgucgou1vhjpo",
	"pairAddress": "2RVVkjA9cRHzZgpLiS1s5eRudqF8ZD3kguCGoU1vhjPo",
	"baseToken": {"address": "4vMsoUT2BWatFweudnQM1xedRLfJgJ7hswhcpz4xgBTy", "name": "Honey", "symbol": "HONEY"},
	"quoteToken": {"address": "So11111111111111111111111111111111111111112", "name": "Wrapped SOL", "symbol": "SOL"},
	"priceNative": "0.0003",
	"priceUsd": "0.0512",
	"txns": {"m5": {"buys": 1, "sells": 2}, "h1": {"buys": 10, "sells": 12}, "h6": {"buys": 60, "sells": 50}, "h24": {"buys": 300, "sells": 280}},
	"volume": {"m5": 100.5, "h1": 2000, "h6": 15000, "h24": 64000.25},
	"priceChange": {"m5": 0.1, "h1": -1.2, "h6": 3.4, "h24": -5.6},
	"liquidity": {"usd": 120000.5, "base": 1000000, "quote": 300},
	"fdv": 51200000,
	"pairCreatedAt": 1700000000000
}`

func TestPairDecodesCamelCasePayload(t *testing.T) {
	var pair Pair
	if err := json.Unmarshal([]byte(honeyPayload), &pair); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if pair.ChainID != "solana" || pair.DexID != "raydium" {
		t.Fatalf("unexpected chain/dex: %s/%s", pair.ChainID, pair.DexID)
	}
	if pair.BaseToken.Symbol != "HONEY" || pair.QuoteToken.Symbol != "SOL" {
		t.Fatalf("unexpected symbols: %s/%s", pair.BaseToken.Symbol, pair.QuoteToken.Symbol)
	}
	if pair.PriceUSD == nil || *pair.PriceUSD != "0.0512" {
		t.Fatalf("unexpected priceUsd: %v", pair.PriceUSD)
	}
	if pair.Txns.H24.Buys != 300 || pair.Txns.H24.Sells != 280 {
		t.Fatalf("unexpected h24 txns: %+v", pair.Txns.H24)
	}
	if pair.Liquidity == nil || pair.Liquidity.USD == nil || *pair.Liquidity.USD != 120000.5 {
		t.Fatalf("unexpected liquidity: %+v", pair.Liquidity)
	}
	if pair.FDV == nil || pair.PairCreatedAt == nil {
		t.Fatalf("expected fdv and pairCreatedAt")
	}
	if pair.Symbol() != "HONEYSOL" {
		t.Fatalf("unexpected symbol: %s", pair.Symbol())
	}
}

func TestPairOptionalFieldsMissing(t *testing.T) {
	payload := `{"chainId":"ethereum","dexId":"uniswap","pairAddress":"0xabc","baseToken":{"address":"0x1","name":"A","symbol":"A"},"quoteToken":{"symbol":"WETH"},"priceNative":"1"}`

	var pair Pair
	if err := json.Unmarshal([]byte(payload), &pair); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if pair.PriceUSD != nil || pair.Liquidity != nil || pair.FDV != nil || pair.PairCreatedAt != nil {
		t.Fatalf("optional fields should be nil: %+v", pair)
	}
}

func TestIdentityFromPair(t *testing.T) {
	var pair Pair
	if err := json.Unmarshal([]byte(honeyPayload), &pair); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got := IdentityFromPair(pair)
	want := PairIdentity{
		ChainID:      "solana",
		BaseSymbol:   "HONEY",
		QuoteSymbol:  "SOL",
		TokenAddress: "4vMsoUT2BWatFweudnQM1xedRLfJgJ7hswhcpz4xgBTy",
		PairAddress:  "2RVVkjA9cRHzZgpLiS1s5eRudqF8ZD3kguCGoU1vhjPo",
	}
	if got != want {
		t.Fatalf("identity mismatch: %+v != %+v", got, want)
	}
}

func TestSameAsIgnoresChain(t *testing.T) {
	a := PairIdentity{ChainID: "solana", BaseSymbol: "T", QuoteSymbol: "USDT", TokenAddress: "t", PairAddress: "p"}
	b := a
	b.ChainID = "bsc"
	if !a.SameAs(b) {
		t.Fatalf("records differing only by chain should be duplicates")
	}

	c := a
	c.PairAddress = "other"
	if a.SameAs(c) {
		t.Fatalf("records with different pair address are not duplicates")
	}
}

func TestMatches(t *testing.T) {
	p := PairIdentity{ChainID: "solana", BaseSymbol: "HONEY", QuoteSymbol: "USDT", TokenAddress: "tok", PairAddress: "pair"}
	for _, key := range []string{"HONEY", "USDT", "tok", "pair"} {
		if !p.Matches(key) {
			t.Fatalf("expected match for %q", key)
		}
	}
	for _, key := range []string{"HO", "honey", "solana", ""} {
		if p.Matches(key) {
			t.Fatalf("unexpected match for %q", key)
		}
	}
}

func TestIdentifiesIgnoresQuoteSymbol(t *testing.T) {
	p := PairIdentity{ChainID: "solana", BaseSymbol: "HONEY", QuoteSymbol: "USDC", TokenAddress: "tok", PairAddress: "pair"}
	for _, key := range []string{"HONEY", "tok", "pair"} {
		if !p.Identifies(key) {
			t.Fatalf("expected %q to identify the record", key)
		}
	}
	for _, key := range []string{"USDC", "solana", "honey"} {
		if p.Identifies(key) {
			t.Fatalf("%q must not identify the record", key)
		}
	}
}
