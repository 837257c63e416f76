package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/testhelpers"
)

func TestRateRecomputesSummary(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	a := testhelpers.CreateUser(t, db, "a@example.com")
	b := testhelpers.CreateUser(t, db, "b@example.com")
	ratings := service.NewRatingService(db)
	ctx := context.Background()

	s, err := ratings.Rate(ctx, a.ID, "52772", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, s.RatingCount)
	assert.InDelta(t, 5.0, s.AverageRating, 0.001)

	s, err = ratings.Rate(ctx, b.ID, "52772", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RatingCount)
	assert.InDelta(t, 3.5, s.AverageRating, 0.001)

	// Re-rating replaces the user's earlier rating.
	s, err = ratings.Rate(ctx, a.ID, "52772", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RatingCount)
	assert.InDelta(t, 2.5, s.AverageRating, 0.001)

	got, err := ratings.Summary(ctx, "52772")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestRateRejectsOutOfRange(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "r@example.com")
	ratings := service.NewRatingService(db)

	for _, v := range []int{0, 6, -1} {
		_, err := ratings.Rate(context.Background(), user.ID, "1", v)
		assert.ErrorIs(t, err, service.ErrInvalidRating)
	}
	_, err := ratings.Rate(context.Background(), user.ID, "", 3)
	assert.ErrorIs(t, err, service.ErrInvalidRecipeID)
}

func TestSummaryUnknownOrBlank(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ratings := service.NewRatingService(db)

	for _, id := range []string{"", "  ", "unrated"} {
		s, err := ratings.Summary(context.Background(), id)
		require.NoError(t, err)
		assert.Zero(t, s.AverageRating)
		assert.Zero(t, s.RatingCount)
	}
}
