// Package reviews holds product reviews and their helpful votes.
package reviews

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/kvstore"
	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("review not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyComment   = errors.New("comment is required")
	ErrMissingProduct = errors.New("product is required")
	ErrAlreadyVoted   = errors.New("already voted on this review")
	ErrTooManyPhotos  = errors.New("at most 3 photos per review")
)

type Review struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	UserAvatar   string    `json:"userAvatar,omitempty"`
	UserProfile  string    `json:"userProfile,omitempty"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Photos       []string  `json:"photos,omitempty"`
	Date         time.Time `json:"date"`
	HelpfulVotes int       `json:"helpfulVotes"`

	// Satu user satu vote.
	VoterIDs []string `json:"voterIds,omitempty"`
}

// Summary aggregates ratings for the reviews page header.
type Summary struct {
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	RatingCounts map[int]int `json:"ratingCounts"`
}

const (
	SortNewest     = "terbaru"
	SortRatingHigh = "rating-tinggi"
	SortRatingLow  = "rating-rendah"
)

type Service struct {
	mu    sync.Mutex
	store kvstore.Store
	now   func() time.Time
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// List returns reviews, optionally filtered to one rating (0 = all), sorted
// per the given order. Rating sorts break ties by helpful votes.
func (s *Service) List(ctx context.Context, filterRating int, order string) ([]Review, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0, len(all))
	for _, r := range all {
		if filterRating != 0 && r.Rating != filterRating {
			continue
		}
		out = append(out, r)
	}
	switch order {
	case SortRatingHigh:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating > out[j].Rating
			}
			return out[i].HelpfulVotes > out[j].HelpfulVotes
		})
	case SortRatingLow:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Rating != out[j].Rating {
				return out[i].Rating < out[j].Rating
			}
			return out[i].HelpfulVotes > out[j].HelpfulVotes
		})
	default: // newest first
		sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	}
	return out, nil
}

func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.load(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Count: len(all), RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for _, r := range all {
		total += r.Rating
		sum.RatingCounts[r.Rating]++
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

// Add appends a review. Rating must be 1..5, comment non-empty, at most 3
// photos.
func (s *Service) Add(ctx context.Context, r Review) (Review, error) {
	if r.Rating < 1 || r.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	if strings.TrimSpace(r.Comment) == "" {
		return Review{}, ErrEmptyComment
	}
	if r.ProductID == "" {
		return Review{}, ErrMissingProduct
	}
	if len(r.Photos) > 3 {
		return Review{}, ErrTooManyPhotos
	}
	r.ID = uuid.NewString()
	r.Date = s.now().UTC()
	r.HelpfulVotes = 0
	r.VoterIDs = nil

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return Review{}, err
	}
	all = append(all, r)
	if err := s.store.Set(ctx, kvstore.KeyReviews, all); err != nil {
		return Review{}, err
	}
	return r, nil
}

// Vote marks a review helpful. A voter counts at most once; the second vote
// returns ErrAlreadyVoted and changes nothing.
func (s *Service) Vote(ctx context.Context, reviewID, voterID string) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return Review{}, err
	}
	for i := range all {
		if all[i].ID != reviewID {
			continue
		}
		for _, v := range all[i].VoterIDs {
			if v == voterID {
				return Review{}, ErrAlreadyVoted
			}
		}
		all[i].HelpfulVotes++
		all[i].VoterIDs = append(all[i].VoterIDs, voterID)
		if err := s.store.Set(ctx, kvstore.KeyReviews, all); err != nil {
			return Review{}, err
		}
		return all[i], nil
	}
	return Review{}, ErrNotFound
}

// load materializes the seed list on first read so votes on seeded reviews
// persist.
func (s *Service) load(ctx context.Context) ([]Review, error) {
	var all []Review
	found, err := s.store.Get(ctx, kvstore.KeyReviews, &all)
	if err != nil {
		return nil, err
	}
	if !found {
		return seedReviews(), nil
	}
	return all, nil
}
