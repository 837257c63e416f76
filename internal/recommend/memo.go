package recommend

import (
	"context"
	"slices"

	"github.com/pageza/mealdeck/backend/internal/types"
)

// Memo remembers the last computation for one session. The zero value is an
// empty memo. A Memo is not safe for concurrent use; callers serialize
// access per session.
type Memo struct {
	valid      bool
	favorites  []types.Recipe
	maxResults int
	result     Result
}

// Lookup returns the remembered result when favorites and maxResults equal
// those of the last stored computation.
func (m *Memo) Lookup(favorites []types.Recipe, maxResults int) (Result, bool) {
	if m == nil || !m.valid || m.maxResults != maxResults || !slices.Equal(m.favorites, favorites) {
		return Result{}, false
	}
	r := m.result
	r.Recipes = slices.Clone(r.Recipes)
	return r, true
}

// Store replaces the remembered computation.
func (m *Memo) Store(favorites []types.Recipe, maxResults int, result Result) {
	m.valid = true
	m.favorites = slices.Clone(favorites)
	m.maxResults = maxResults
	result.Recipes = slices.Clone(result.Recipes)
	m.result = result
}

// Reset empties the memo.
func (m *Memo) Reset() {
	*m = Memo{}
}

// ComputeWithMemo returns the memoized result when favorites are unchanged
// since the last call with memo, and computes and stores a new one
// otherwise. cached reports which path was taken. The memo is left untouched
// when the computation fails or yields no recipes, so an empty result caused
// by unavailable lookups is retried on the next call.
func (e *Engine) ComputeWithMemo(ctx context.Context, memo *Memo, favorites []types.Recipe, maxResults int) (res Result, cached bool, err error) {
	limit := e.limit(maxResults)
	if r, ok := memo.Lookup(favorites, limit); ok {
		return r, true, nil
	}

	res, err = e.Compute(ctx, favorites, limit)
	if err != nil {
		return Result{}, false, err
	}
	if memo != nil && len(res.Recipes) > 0 {
		memo.Store(favorites, limit, res)
	}
	return res, false, nil
}
