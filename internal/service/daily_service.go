package service

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"sanxing/internal/cache"
	"sanxing/internal/models"
	"sanxing/internal/observability"
	"sanxing/internal/repository"
)

// SelectDaily picks k questions from corpus for the given day. The seed is
// the numeric YYYYMMDD of today shifted by skewDays, so every caller on the
// same calendar day sees the same selection and the selection rolls over at
// midnight. The RNG is constructed per call; nothing global is reseeded.
//
// When the corpus is smaller than k the whole corpus is returned in stored
// order.
func SelectDaily(corpus []models.Question, today time.Time, k, skewDays int) []models.Question {
	if len(corpus) < k {
		out := make([]models.Question, len(corpus))
		copy(out, corpus)
		return out
	}

	seed := DailySeed(today, skewDays)
	rng := rand.New(rand.NewSource(seed))

	picked := make([]models.Question, 0, k)
	for _, idx := range rng.Perm(len(corpus))[:k] {
		picked = append(picked, corpus[idx])
	}
	return picked
}

// DailySeed derives the deterministic seed for a day: the date shifted by
// skewDays, rendered as the integer YYYYMMDD. 2025-10-07 with a skew of 2
// yields 20251009.
func DailySeed(today time.Time, skewDays int) int64 {
	shifted := today.UTC().AddDate(0, 0, skewDays)
	y, m, d := shifted.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// DailyService serves the rotating daily selection and one-off random
// questions from the visible corpus.
type DailyService struct {
	questionRepo repository.QuestionRepository
	count        int
	skewDays     int
	now          func() time.Time
}

func NewDailyService(questionRepo repository.QuestionRepository, count, skewDays int) *DailyService {
	return &DailyService{
		questionRepo: questionRepo,
		count:        count,
		skewDays:     skewDays,
		now:          time.Now,
	}
}

// Daily returns today's selection, cached in Redis under the shifted date
// so the cache key rolls over exactly when the selection does.
func (s *DailyService) Daily(ctx context.Context) ([]models.Question, error) {
	today := s.now().UTC()
	key := cache.DailyKey(today.AddDate(0, 0, s.skewDays).Format("20060102"))

	var cached []models.Question
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		observability.DailySelections.WithLabelValues("cache").Inc()
		return cached, nil
	}

	corpus, err := s.questionRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	selected := SelectDaily(corpus, today, s.count, s.skewDays)

	if err := cache.SetJSON(ctx, key, selected, cache.DailyTTL); err != nil {
		slog.Debug("Failed to cache daily selection", "error", err)
	}
	observability.DailySelections.WithLabelValues("db").Inc()
	return selected, nil
}

// Random returns one uniformly random visible question. Unlike Daily this
// is not deterministic; two calls in a row may differ.
func (s *DailyService) Random(ctx context.Context) (*models.Question, error) {
	corpus, err := s.questionRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, models.NewNotFoundError("Question")
	}
	q := corpus[rand.Intn(len(corpus))]
	return &q, nil
}
