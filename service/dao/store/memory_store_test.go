package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/printshare/service/dao"
	"github.com/viant/printshare/service/dao/criteria"
)

type record struct {
	ID    string
	State string
}

func newStore() *MemoryStore[string, record] {
	return NewMemoryStore[string, record](func(r *record) string { return r.ID }).
		WithFilter(func(r *record, parameters []*dao.Parameter) bool {
			return criteria.FilterByState(r.State, parameters)
		})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	srv := newStore()

	require.NoError(t, srv.Save(ctx, &record{ID: "b", State: "completed"}))
	require.NoError(t, srv.Save(ctx, &record{ID: "a", State: "failed"}))
	require.NoError(t, srv.Save(ctx, &record{ID: "c", State: "completed"}))
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &record{}), dao.ErrInvalidID)

	loaded, err := srv.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "failed", loaded.State)
	_, err = srv.Load(ctx, "x")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	testCases := []struct {
		description string
		parameters  []*dao.Parameter
		expect      []string
	}{
		{description: "all in insertion order", expect: []string{"b", "a", "c"}},
		{description: "single state", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterState, "completed")}, expect: []string{"b", "c"}},
		{description: "any of states", parameters: []*dao.Parameter{dao.NewParameter(dao.ParameterState, "failed", "completed")}, expect: []string{"b", "a", "c"}},
		{description: "unknown parameter ignored", parameters: []*dao.Parameter{dao.NewParameter("Name", "x")}, expect: []string{"b", "a", "c"}},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			list, err := srv.List(ctx, tc.parameters...)
			require.NoError(t, err)
			var ids []string
			for _, r := range list {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.expect, ids)
		})
	}

	require.NoError(t, srv.Delete(ctx, "a"))
	assert.ErrorIs(t, srv.Delete(ctx, "a"), dao.ErrNotFound)
	list, err := srv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
