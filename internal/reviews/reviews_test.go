package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(kvstore.NewMemory(nil))
}

func TestListSeedsAndSorting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("seed reviews served on empty store", func(t *testing.T) {
		all, err := svc.List(ctx, 0, SortNewest)
		require.NoError(t, err)
		require.Len(t, all, 5)
		assert.Equal(t, "seed-4", all[0].ID, "Dewi's review is the newest seed")
	})

	t.Run("filter by rating", func(t *testing.T) {
		fours, err := svc.List(ctx, 4, SortNewest)
		require.NoError(t, err)
		require.Len(t, fours, 2)
		for _, r := range fours {
			assert.Equal(t, 4, r.Rating)
		}
	})

	t.Run("rating-tinggi breaks ties by helpful votes", func(t *testing.T) {
		all, err := svc.List(ctx, 0, SortRatingHigh)
		require.NoError(t, err)
		require.Len(t, all, 5)
		// Three five-star seeds: 15, 12 and 9 votes in that order.
		assert.Equal(t, "seed-3", all[0].ID)
		assert.Equal(t, "seed-1", all[1].ID)
		assert.Equal(t, "seed-5", all[2].ID)
		assert.Equal(t, 4, all[3].Rating)
	})

	t.Run("rating-rendah puts low ratings first", func(t *testing.T) {
		all, err := svc.List(ctx, 0, SortRatingLow)
		require.NoError(t, err)
		assert.Equal(t, 4, all[0].Rating)
		assert.Equal(t, 5, all[4].Rating)
	})
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	sum, err := svc.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Count)
	assert.InDelta(t, 4.6, sum.Average, 0.001)
	assert.Equal(t, 3, sum.RatingCounts[5])
	assert.Equal(t, 2, sum.RatingCounts[4])
	assert.Equal(t, 0, sum.RatingCounts[1])
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	valid := Review{
		UserID:      "u1",
		UserName:    "Andhini",
		ProductID:   "es-teh-manis",
		ProductName: "Es Teh Manis Jumbo",
		Rating:      5,
		Comment:     "Seger banget!",
	}

	t.Run("valid review is stored with fresh id and date", func(t *testing.T) {
		svc := newTestService()
		at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return at }

		r, err := svc.Add(ctx, valid)
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, at, r.Date)
		assert.Zero(t, r.HelpfulVotes)

		all, err := svc.List(ctx, 0, SortNewest)
		require.NoError(t, err)
		require.Len(t, all, 6)
		assert.Equal(t, r.ID, all[0].ID)
	})

	t.Run("caller-supplied votes are discarded", func(t *testing.T) {
		svc := newTestService()
		in := valid
		in.HelpfulVotes = 99
		in.VoterIDs = []string{"x"}
		r, err := svc.Add(ctx, in)
		require.NoError(t, err)
		assert.Zero(t, r.HelpfulVotes)
		assert.Empty(t, r.VoterIDs)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService()

		bad := valid
		bad.Rating = 0
		_, err := svc.Add(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidRating)

		bad = valid
		bad.Rating = 6
		_, err = svc.Add(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidRating)

		bad = valid
		bad.Comment = "   "
		_, err = svc.Add(ctx, bad)
		assert.ErrorIs(t, err, ErrEmptyComment)

		bad = valid
		bad.ProductID = ""
		_, err = svc.Add(ctx, bad)
		assert.ErrorIs(t, err, ErrMissingProduct)

		bad = valid
		bad.Photos = []string{"a", "b", "c", "d"}
		_, err = svc.Add(ctx, bad)
		assert.ErrorIs(t, err, ErrTooManyPhotos)
	})
}

func TestVote(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("first vote counts", func(t *testing.T) {
		r, err := svc.Vote(ctx, "seed-1", "voter-1")
		require.NoError(t, err)
		assert.Equal(t, 13, r.HelpfulVotes)
	})

	t.Run("second vote by the same user is rejected", func(t *testing.T) {
		_, err := svc.Vote(ctx, "seed-1", "voter-1")
		assert.ErrorIs(t, err, ErrAlreadyVoted)

		all, err := svc.List(ctx, 0, SortNewest)
		require.NoError(t, err)
		for _, r := range all {
			if r.ID == "seed-1" {
				assert.Equal(t, 13, r.HelpfulVotes)
			}
		}
	})

	t.Run("different user can still vote", func(t *testing.T) {
		r, err := svc.Vote(ctx, "seed-1", "voter-2")
		require.NoError(t, err)
		assert.Equal(t, 14, r.HelpfulVotes)
	})

	t.Run("vote on a seeded review persists it", func(t *testing.T) {
		// After the first vote the list comes from the store, not the seeds.
		all, err := svc.List(ctx, 0, SortNewest)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("unknown review", func(t *testing.T) {
		_, err := svc.Vote(ctx, "ghost", "voter-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
