package pokeapi

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"pokehub/pkg/models"
)

// ProgressFunc is called after each successful fetch during a bulk load.
// Calls arrive from multiple goroutines; loaded is the running count.
type ProgressFunc func(loaded, total int)

// LoadAll fetches one summary per id in [first, last], all dispatched
// concurrently (optionally capped by maxInFlight), and waits for every
// request. The load is all-or-nothing: the first error cancels the
// remaining requests and fails the whole call.
//
// Results land in id order: each fetch writes its own slot, so the returned
// slice is ascending by id with no re-sort needed.
func (c *Client) LoadAll(ctx context.Context, first, last, maxInFlight int, progress ProgressFunc) ([]models.PokemonSummary, error) {
	if first < 1 || last < first {
		return nil, fmt.Errorf("pokeapi: invalid id range %d..%d", first, last)
	}

	out := make([]models.PokemonSummary, last-first+1)

	g, gctx := errgroup.WithContext(ctx)
	if maxInFlight > 0 {
		g.SetLimit(maxInFlight)
	}

	var loaded atomic.Int64
	for id := first; id <= last; id++ {
		id := id
		g.Go(func() error {
			s, err := c.FetchSummary(gctx, strconv.Itoa(id))
			if err != nil {
				return fmt.Errorf("load id %d: %w", id, err)
			}
			out[id-first] = s
			if progress != nil {
				progress(int(loaded.Add(1)), len(out))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
