package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/SteveYuOWO/token-tide/internal/model"
	"github.com/SteveYuOWO/token-tide/internal/storage"
)

var (
	// ErrNoPairs is returned when the remote service has no pair for the input.
	ErrNoPairs = errors.New("no pairs found")

	// ErrNoStore is returned by operations that need a pair store when none
	// is configured.
	ErrNoStore = errors.New("pair store is not available")
)

// PriceClient is the subset of the DexScreener client the pipeline needs.
type PriceClient interface {
	Search(ctx context.Context, query string) ([]model.Pair, error)
	FetchPair(ctx context.Context, chainID, pairAddress string) ([]model.Pair, error)
}

// Options controls cache integration.
type Options struct {
	// PreferCache resolves identifiers found in the store without searching.
	PreferCache bool
	// Persist appends every remotely resolved pair to the store.
	Persist bool
}

// Resolution is the outcome of resolving an identifier.
type Resolution struct {
	Pair      model.Pair
	FromCache bool
}

// Resolver turns a symbol or address into a single pair.
type Resolver struct {
	client PriceClient
	store  storage.PairStore
	opts   Options
	logger *zap.Logger
}

// New builds a Resolver. store may be nil, which disables caching.
func New(client PriceClient, store storage.PairStore, opts Options, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		client: client,
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Resolve looks identifier up in the store first (when PreferCache is set),
// then falls back to search followed by an exact pair fetch. The first
// result of each remote call wins.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (Resolution, error) {
	if r.client == nil {
		return Resolution{}, fmt.Errorf("price client is nil")
	}
	log := r.logger.With(
		zap.String("identifier", identifier),
		zap.Stringer("kind", ClassifyIdentifier(identifier)),
	)

	if r.opts.PreferCache && r.store != nil {
		res, ok, err := r.resolveCached(ctx, identifier, log)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}

	pair, err := r.searchAndFetch(ctx, identifier)
	if err != nil {
		return Resolution{}, err
	}
	log.Debug("resolved remotely",
		zap.String("chain", pair.ChainID),
		zap.String("pair_address", pair.PairAddress),
	)

	if r.opts.Persist && r.store != nil {
		if _, err := r.store.Append(ctx, model.IdentityFromPair(pair)); err != nil {
			log.Warn("cache resolved pair", zap.Error(err))
		}
	}

	return Resolution{Pair: pair}, nil
}

// resolveCached short-circuits the search for identifiers the store knows.
// Only records whose base symbol, token address or pair address equals
// identifier count; a record that shares only the quote symbol describes a
// different token. Stale records are evicted and a failed fetch falls back to
// search.
func (r *Resolver) resolveCached(ctx context.Context, identifier string, log *zap.Logger) (Resolution, bool, error) {
	cached, found, err := r.findCached(ctx, identifier)
	if err != nil {
		log.Warn("store lookup failed", zap.Error(err))
		return Resolution{}, false, nil
	}
	if !found {
		log.Debug("cache miss")
		return Resolution{}, false, nil
	}
	log = log.With(
		zap.String("chain", cached.ChainID),
		zap.String("pair_address", cached.PairAddress),
	)

	pairs, err := r.client.FetchPair(ctx, cached.ChainID, cached.PairAddress)
	if err != nil {
		if ctx.Err() != nil {
			return Resolution{}, false, err
		}
		log.Warn("fetch cached pair failed, searching", zap.Error(err))
		return Resolution{}, false, nil
	}
	if len(pairs) == 0 {
		log.Info("cached pair no longer listed, evicting")
		if _, err := r.store.Remove(ctx, cached); err != nil {
			log.Warn("evict stale pair", zap.Error(err))
		}
		return Resolution{}, false, nil
	}

	log.Debug("cache hit")
	return Resolution{Pair: pairs[0], FromCache: true}, true, nil
}

// findCached returns the first record in insertion order that identifies
// identifier. FindByIdentifier answers the common case; the full scan runs
// only when its first hit matched on the quote symbol alone.
func (r *Resolver) findCached(ctx context.Context, identifier string) (model.PairIdentity, bool, error) {
	cached, found, err := r.store.FindByIdentifier(ctx, identifier)
	if err != nil || !found {
		return model.PairIdentity{}, false, err
	}
	if cached.Identifies(identifier) {
		return cached, true, nil
	}

	pairs, err := r.store.Pairs(ctx)
	if err != nil {
		return model.PairIdentity{}, false, err
	}
	for _, p := range pairs {
		if p.Identifies(identifier) {
			return p, true, nil
		}
	}
	return model.PairIdentity{}, false, nil
}

func (r *Resolver) searchAndFetch(ctx context.Context, identifier string) (model.Pair, error) {
	candidates, err := r.client.Search(ctx, identifier)
	if err != nil {
		return model.Pair{}, err
	}
	if len(candidates) == 0 {
		return model.Pair{}, ErrNoPairs
	}
	candidate := candidates[0]

	pairs, err := r.client.FetchPair(ctx, candidate.ChainID, candidate.PairAddress)
	if err != nil {
		return model.Pair{}, err
	}
	if len(pairs) == 0 {
		return model.Pair{}, ErrNoPairs
	}
	return pairs[0], nil
}

// List returns every search candidate for identifier without fetching or
// persisting anything.
func (r *Resolver) List(ctx context.Context, identifier string) ([]model.Pair, error) {
	if r.client == nil {
		return nil, fmt.Errorf("price client is nil")
	}
	pairs, err := r.client.Search(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}
	r.logger.Debug("listed pairs", zap.String("identifier", identifier), zap.Int("count", len(pairs)))
	return pairs, nil
}

// Register resolves address remotely, ignoring the cache, and stores the
// result. It reports whether a new record was added.
func (r *Resolver) Register(ctx context.Context, address string) (Resolution, bool, error) {
	if r.store == nil {
		return Resolution{}, false, ErrNoStore
	}
	if r.client == nil {
		return Resolution{}, false, fmt.Errorf("price client is nil")
	}
	addr, kind, err := ParseAddress(address)
	if err != nil {
		return Resolution{}, false, err
	}

	pair, err := r.searchAndFetch(ctx, addr)
	if err != nil {
		return Resolution{}, false, err
	}

	inserted, err := r.store.Append(ctx, model.IdentityFromPair(pair))
	if err != nil {
		return Resolution{}, false, fmt.Errorf("store pair: %w", err)
	}
	r.logger.Debug("registered address",
		zap.String("address", addr),
		zap.Stringer("kind", kind),
		zap.Bool("inserted", inserted),
	)
	return Resolution{Pair: pair}, inserted, nil
}
