package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SteveYuOWO/token-tide/internal/render"
)

const (
	honeyToken = "4vMsoUT2BWatFweudnQM1xedRLfJgJ7hswhcpz4xgBTy"
	honeyPair  = "2RVVkjA9cRHzZgpLiS1s5eRudqF8ZD3kguCGoU1vhjPo"
)

var honeyJSON = fmt.Sprintf(`{
	"chainId": "solana",
	"dexId": "raydium",
	"url": "https://dexscreener.com/solana/%[2]s",
	"pairAddress": "%[2]s",
	"baseToken": {"address": "%[1]s", "name": "Hivemapper", "symbol": "HONEY"},
	"quoteToken": {"symbol": "USDC"},
	"priceNative": "0.05",
	"priceUsd": "0.05",
	"txns": {"m5": {"buys": 1, "sells": 2}, "h1": {"buys": 3, "sells": 4}, "h6": {"buys": 5, "sells": 6}, "h24": {"buys": 7, "sells": 8}},
	"volume": {"m5": 1, "h1": 2, "h6": 3, "h24": 1234567},
	"priceChange": {"m5": 0, "h1": 0, "h6": 0, "h24": 2.5},
	"liquidity": {"usd": 2500, "base": 1, "quote": 2},
	"fdv": 5000000000
}`, honeyToken, honeyPair)

type fakeDex struct {
	searches atomic.Int32
	fetches  atomic.Int32
	status   int
}

func (f *fakeDex) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/latest/dex/search/":
		f.searches.Add(1)
		q := r.URL.Query().Get("q")
		if q == "HONEY" || q == honeyToken {
			fmt.Fprintf(w, `{"schemaVersion": "1.0.0", "pairs": [%s]}`, honeyJSON)
			return
		}
		fmt.Fprint(w, `{"schemaVersion": "1.0.0", "pairs": []}`)
	case r.URL.Path == "/latest/dex/pairs/solana/"+honeyPair:
		f.fetches.Add(1)
		fmt.Fprintf(w, `{"schemaVersion": "1.0.0", "pairs": [%s]}`, honeyJSON)
	default:
		fmt.Fprint(w, `{"schemaVersion": "1.0.0", "pairs": null}`)
	}
}

type harness struct {
	dex       *fakeDex
	apiURL    string
	storePath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"TOKENTIDE_API_URL", "TOKENTIDE_STORE", "TOKENTIDE_STORE_DSN", "TOKENTIDE_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	work := t.TempDir()
	t.Chdir(work)

	dex := &fakeDex{}
	server := httptest.NewServer(dex)
	t.Cleanup(server.Close)

	return &harness{
		dex:       dex,
		apiURL:    server.URL,
		storePath: filepath.Join(work, "cache", "config.toml"),
	}
}

func (h *harness) run(t *testing.T, args ...string) (*render.RecordingUI, error) {
	t.Helper()
	u := render.NewRecordingUI()
	root := newRootCmd(u)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--api-url", h.apiURL, "--store", h.storePath, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return u, err
}

func detailValue(t *testing.T, table render.RecordedTable, label string) string {
	t.Helper()
	for _, row := range table.Rows {
		if row[0] == label {
			return row[1]
		}
	}
	t.Fatalf("row %q not found", label)
	return ""
}

func TestQueryResolvesAndCaches(t *testing.T) {
	h := newHarness(t)

	u, err := h.run(t, "query", "HONEY")
	require.NoError(t, err)
	require.Equal(t, []string{"Searching HONEY ..."}, u.Messages("Spinner"))

	tables := u.Tables()
	require.Len(t, tables, 1)
	require.Equal(t, render.DetailHeaders, tables[0].Headers)
	require.Equal(t, "HONEYUSDC", detailValue(t, tables[0], "Pair"))
	require.Equal(t, "0.05", detailValue(t, tables[0], "Price In USD"))
	require.Equal(t, "1.23M (1,234,567)", detailValue(t, tables[0], "24h Volume"))
	require.Equal(t, "+2.50%", detailValue(t, tables[0], "24h Change"))
	require.Equal(t, int32(1), h.dex.searches.Load())
	require.Equal(t, int32(1), h.dex.fetches.Load())

	data, err := os.ReadFile(h.storePath)
	require.NoError(t, err)
	require.Contains(t, string(data), honeyPair)

	u, err = h.run(t, "query", honeyToken)
	require.NoError(t, err)
	require.Len(t, u.Tables(), 1)
	require.Equal(t, int32(1), h.dex.searches.Load(), "cached token must skip search")
	require.Equal(t, int32(2), h.dex.fetches.Load())
}

func TestQuerySimple(t *testing.T) {
	h := newHarness(t)

	u, err := h.run(t, "query", "--simple", "HONEY")
	require.NoError(t, err)
	rows := u.Tables()[0].Rows
	require.Equal(t, [][]string{
		{"Pair", "HONEYUSDC"},
		{"Price In USD", "0.05"},
		{"Token Address", honeyToken},
	}, rows)
}

func TestQueryNoCacheSearchesAgain(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "query", "HONEY")
	require.NoError(t, err)
	_, err = h.run(t, "query", "--no-cache", "HONEY")
	require.NoError(t, err)
	require.Equal(t, int32(2), h.dex.searches.Load())
}

func TestQueryNoPairs(t *testing.T) {
	h := newHarness(t)

	u, err := h.run(t, "query", "UNKNOWNTOKEN")
	require.NoError(t, err)
	require.Equal(t, []string{"No pairs found."}, u.Messages("Info"))
	require.Empty(t, u.Tables())
	require.Equal(t, int32(0), h.dex.fetches.Load())

	data, err := os.ReadFile(h.storePath)
	require.NoError(t, err)
	require.NotContains(t, string(data), "pair_address")
}

func TestQueryRemoteFailureExitsZero(t *testing.T) {
	h := newHarness(t)
	h.dex.status = http.StatusInternalServerError

	u, err := h.run(t, "query", "HONEY")
	require.NoError(t, err)
	errs := u.Messages("Error")
	require.Len(t, errs, 1)
	require.True(t, strings.HasPrefix(errs[0], "Error: Failed to fetch data: 500"), errs[0])
}

func TestQueryRequiresToken(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "query")
	require.Error(t, err)
}

func TestInvalidLogLevelFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "query", "HONEY", "--log-level", "loud")
	require.Error(t, err)
	require.Equal(t, int32(0), h.dex.searches.Load())
}

func TestListPrintsCandidates(t *testing.T) {
	h := newHarness(t)

	u, err := h.run(t, "list", "HONEY")
	require.NoError(t, err)
	tables := u.Tables()
	require.Len(t, tables, 1)
	require.Equal(t, render.ListHeaders, tables[0].Headers)
	require.Equal(t, [][]string{
		{"HONEYUSDC", "solana", "raydium", "0.05", honeyToken, honeyPair},
	}, tables[0].Rows)
	require.Equal(t, int32(0), h.dex.fetches.Load())

	u, err = h.run(t, "list", "UNKNOWNTOKEN")
	require.NoError(t, err)
	require.True(t, u.HasMessage("No pairs found."))
}

func TestAddThenCacheListAndClear(t *testing.T) {
	h := newHarness(t)

	u, err := h.run(t, "add", honeyToken)
	require.NoError(t, err)
	require.Len(t, u.Messages("Success"), 1)

	u, err = h.run(t, "add", honeyToken)
	require.NoError(t, err)
	require.True(t, u.HasMessage("already cached"))

	u, err = h.run(t, "add", "HONEY")
	require.NoError(t, err)
	require.True(t, u.HasMessage("invalid address"))

	u, err = h.run(t, "cache", "list")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"HONEYUSDC", "solana", honeyToken, honeyPair}}, u.Tables()[0].Rows)

	u, err = h.run(t, "cache", "list", "hny")
	require.NoError(t, err)
	require.Len(t, u.Tables(), 1)

	u, err = h.run(t, "cache", "list", "@@")
	require.NoError(t, err)
	require.True(t, u.HasMessage("No cached pairs."))

	_, err = h.run(t, "cache", "clear")
	require.NoError(t, err)

	u, err = h.run(t, "cache", "list")
	require.NoError(t, err)
	require.Empty(t, u.Tables())
}

func TestCorruptStoreIsReset(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(h.storePath), 0o755))
	require.NoError(t, os.WriteFile(h.storePath, []byte("pairs = [[["), 0o644))

	u, err := h.run(t, "query", "HONEY")
	require.NoError(t, err)
	require.Len(t, u.Messages("Warn"), 1)
	require.Len(t, u.Tables(), 1)

	data, err := os.ReadFile(h.storePath)
	require.NoError(t, err)
	require.Contains(t, string(data), honeyPair)
}

func TestRunReportsErrorsThroughUI(t *testing.T) {
	h := newHarness(t)
	base := []string{"--api-url", h.apiURL, "--store", h.storePath}

	u := render.NewRecordingUI()
	code := run(context.Background(), u, append(base, "query", "HONEY", "--log-level", "loud"))
	require.Equal(t, 1, code)
	errs := u.Messages("Error")
	require.Len(t, errs, 1)
	require.True(t, strings.HasPrefix(errs[0], "Error: build logger"), errs[0])

	u = render.NewRecordingUI()
	code = run(context.Background(), u, append(base, "query"))
	require.Equal(t, 1, code)
	require.Len(t, u.Messages("Error"), 1)

	u = render.NewRecordingUI()
	code = run(context.Background(), u, append(base, "--log-level", "error", "query", "HONEY"))
	require.Equal(t, 0, code)
	require.Empty(t, u.Messages("Error"))
	require.Len(t, u.Tables(), 1)
}
