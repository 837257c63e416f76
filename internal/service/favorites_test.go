package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/testhelpers"
	"github.com/pageza/mealdeck/backend/internal/types"
)

type stubSearcher struct {
	byName map[string][]types.RecipeDetail
	err    error
}

func (s stubSearcher) RecipesByName(_ context.Context, name string) ([]types.RecipeDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byName[name], nil
}

type recordingListener struct{ changed []uuid.UUID }

func (l *recordingListener) FavoritesChanged(userID uuid.UUID) {
	l.changed = append(l.changed, userID)
}

func TestFavoritesAddListRemove(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "fav@example.com")
	favs := service.NewFavoritesService(db, nil)
	listener := &recordingListener{}
	favs.SetListener(listener)
	ctx := context.Background()

	_, err := favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken"})
	require.NoError(t, err)
	_, err = favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "52959", Name: "Baked salmon", Category: "Seafood"})
	require.NoError(t, err)

	list, err := favs.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "52772", list[0].ID)
	assert.Equal(t, "Chicken", list[0].Category)
	assert.Equal(t, "52959", list[1].ID)

	ok, err := favs.IsFavorite(ctx, user.ID, "52959")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, favs.Remove(ctx, user.ID, "52959"))
	ok, err = favs.IsFavorite(ctx, user.ID, "52959")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, favs.Remove(ctx, user.ID, "does-not-exist"))
	assert.Len(t, listener.changed, 3)
}

func TestFavoritesAddIsIdempotent(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "idem@example.com")
	favs := service.NewFavoritesService(db, nil)
	ctx := context.Background()

	_, err := favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "1", Name: "Old"})
	require.NoError(t, err)
	_, err = favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "1", Name: "New", Category: "Beef"})
	require.NoError(t, err)

	list, err := favs.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "New", list[0].Name)
	assert.Equal(t, "Beef", list[0].Category)
}

func TestFavoritesAreScopedPerUser(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	a := testhelpers.CreateUser(t, db, "a@example.com")
	b := testhelpers.CreateUser(t, db, "b@example.com")
	favs := service.NewFavoritesService(db, nil)
	ctx := context.Background()

	_, err := favs.Add(ctx, a.ID, &types.AddFavoriteRequest{RecipeID: "1"})
	require.NoError(t, err)

	list, err := favs.List(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoritesAddRequiresRecipeID(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	favs := service.NewFavoritesService(db, nil)

	_, err := favs.Add(context.Background(), uuid.New(), &types.AddFavoriteRequest{RecipeID: "  "})
	assert.ErrorIs(t, err, service.ErrInvalidRecipeID)
}

func TestFavoritesListWithDetails(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "details@example.com")
	exact := types.RecipeDetail{ID: "1", Name: "Fish pie", Category: "Seafood", Instructions: "Bake."}
	search := stubSearcher{byName: map[string][]types.RecipeDetail{
		"Fish pie": {{ID: "9", Name: "Fish pie deluxe"}, exact},
		"Stew":     {{ID: "7", Name: "Beef stew"}},
	}}
	favs := service.NewFavoritesService(db, search)
	ctx := context.Background()

	_, err := favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "1", Name: "Fish pie", Category: "Seafood"})
	require.NoError(t, err)
	_, err = favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "2", Name: "Stew", Category: "Beef", ThumbnailURL: "t"})
	require.NoError(t, err)

	details, err := favs.ListWithDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Bake.", details[0].Instructions)
	assert.Equal(t, "2", details[1].ID)
	assert.Equal(t, "Stew", details[1].Name)
	assert.Equal(t, "t", details[1].ThumbnailURL)
}

func TestFavoritesListWithDetailsLookupFailure(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "fail@example.com")
	favs := service.NewFavoritesService(db, stubSearcher{err: errors.New("down")})
	ctx := context.Background()

	_, err := favs.Add(ctx, user.ID, &types.AddFavoriteRequest{RecipeID: "1", Name: "Fish pie", Category: "Seafood"})
	require.NoError(t, err)

	details, err := favs.ListWithDetails(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Seafood", details[0].Category)
}
