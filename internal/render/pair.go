package render

import (
	"fmt"
	"time"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

// Missing is printed for optional values the service did not report.
const Missing = "-"

var (
	ListHeaders   = []string{"Pair", "Chain", "DEX", "Price In USD", "Token Address", "Pair Address"}
	DetailHeaders = []string{"Property", "Value"}
	CacheHeaders  = []string{"Pair", "Chain", "Token Address", "Pair Address"}
)

// Row is one property of a pair detail table.
type Row struct {
	Label string
	Value StyledText
}

// ListRows builds one row per search candidate, in service order.
func ListRows(pairs []model.Pair) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{
			p.Symbol(),
			p.ChainID,
			p.DexID,
			priceUSD(p),
			p.BaseToken.Address,
			p.PairAddress,
		})
	}
	return rows
}

// DetailRows builds the property rows for a single pair. simple limits the
// table to the pair name, USD price and token address.
func DetailRows(p model.Pair, simple bool) []Row {
	rows := []Row{
		{Label: "Pair", Value: Plain(p.Symbol())},
		{Label: "Price In USD", Value: Plain(priceUSD(p))},
		{Label: "Token Address", Value: Plain(p.BaseToken.Address)},
	}
	if simple {
		return rows
	}

	return append(rows,
		Row{Label: "Chain", Value: Plain(p.ChainID)},
		Row{Label: "DEX", Value: Plain(p.DexID)},
		Row{Label: "24h Change", Value: priceChange(p.PriceChange.H24)},
		Row{Label: "24h Txns", Value: Plain(fmt.Sprintf("%d buys / %d sells", p.Txns.H24.Buys, p.Txns.H24.Sells))},
		Row{Label: "24h Volume", Value: Plain(amount("", p.Volume.H24))},
		Row{Label: "FDV", Value: Plain(fdv(p.FDV))},
		Row{Label: "Liquidity", Value: Plain(liquidity(p.Liquidity))},
		Row{Label: "Created", Value: Plain(created(p.PairCreatedAt))},
		Row{Label: "Pair Address", Value: Plain(p.PairAddress)},
		Row{Label: "Link", Value: Plain(orMissing(p.URL))},
	)
}

// Cells applies u's styling to rows, producing table cells.
func Cells(u UI, rows []Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Label, u.Style(r.Value)})
	}
	return out
}

// CacheRows renders stored identities for the cache listing.
func CacheRows(ids []model.PairIdentity) [][]string {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{
			id.BaseSymbol + id.QuoteSymbol,
			id.ChainID,
			id.TokenAddress,
			id.PairAddress,
		})
	}
	return rows
}

func priceUSD(p model.Pair) string {
	if p.PriceUSD == nil {
		return Missing
	}
	return orMissing(*p.PriceUSD)
}

func priceChange(pct float64) StyledText {
	text := fmt.Sprintf("%+.2f%%", pct)
	switch {
	case pct > 0:
		return StyledText{Text: text, Severity: SeveritySuccess}
	case pct < 0:
		return StyledText{Text: text, Severity: SeverityError}
	default:
		return Plain(text)
	}
}

func amount(prefix string, v float64) string {
	return fmt.Sprintf("%s%s (%s%s)", prefix, FormatWithUnit(v), prefix, ToLocaleString(v))
}

func fdv(v *float64) string {
	if v == nil {
		return Missing
	}
	return amount("", *v)
}

func liquidity(l *model.Liquidity) string {
	if l == nil {
		return Missing
	}
	usd := 0.0
	if l.USD != nil {
		usd = *l.USD
	}
	return amount("$", usd)
}

func created(ms *int64) string {
	if ms == nil || *ms <= 0 {
		return Missing
	}
	return time.UnixMilli(*ms).UTC().Format("2006-01-02 15:04 UTC")
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}
