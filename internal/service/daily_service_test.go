package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"sanxing/internal/cache"
	"sanxing/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusOf(n int) []models.Question {
	corpus := make([]models.Question, n)
	for i := range corpus {
		corpus[i] = models.Question{
			ID:           fmt.Sprintf("q-%02d", i),
			QuestionText: fmt.Sprintf("Question %d", i),
		}
	}
	return corpus
}

func TestDailySeed(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 10, 7, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, int64(20251009), DailySeed(day, 2))
	assert.Equal(t, int64(20251007), DailySeed(day, 0))

	// Month rollover.
	assert.Equal(t, int64(20251101), DailySeed(time.Date(2025, 10, 30, 0, 0, 0, 0, time.UTC), 2))
}

func TestDailySeed_TimeOfDayIrrelevant(t *testing.T) {
	t.Parallel()

	morning := time.Date(2025, 10, 7, 0, 0, 1, 0, time.UTC)
	night := time.Date(2025, 10, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DailySeed(morning, 2), DailySeed(night, 2))
}

func TestSelectDaily_Deterministic(t *testing.T) {
	t.Parallel()

	corpus := corpusOf(20)
	day := time.Date(2025, 10, 7, 9, 0, 0, 0, time.UTC)

	first := SelectDaily(corpus, day, 3, 2)
	second := SelectDaily(corpus, day, 3, 2)
	require.Len(t, first, 3)
	assert.Equal(t, first, second, "same day must produce the same selection")

	// Later the same day, different wall clock, same pick.
	later := day.Add(10 * time.Hour)
	assert.Equal(t, first, SelectDaily(corpus, later, 3, 2))
}

func TestSelectDaily_DistinctPicks(t *testing.T) {
	t.Parallel()

	corpus := corpusOf(10)
	for dayOffset := 0; dayOffset < 30; dayOffset++ {
		day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
		picked := SelectDaily(corpus, day, 3, 2)
		require.Len(t, picked, 3)
		seen := make(map[string]struct{})
		for _, q := range picked {
			_, dup := seen[q.ID]
			require.False(t, dup, "duplicate question on day %s", day.Format("2006-01-02"))
			seen[q.ID] = struct{}{}
		}
	}
}

func TestSelectDaily_SmallCorpusReturnedWhole(t *testing.T) {
	t.Parallel()

	corpus := corpusOf(2)
	picked := SelectDaily(corpus, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), 3, 2)
	assert.Equal(t, corpus, picked, "corpus smaller than the pick count comes back whole, in stored order")

	// Exactly k goes through the seeded shuffle: same elements, day-stable
	// order.
	corpus = corpusOf(3)
	day := time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)
	picked = SelectDaily(corpus, day, 3, 2)
	assert.Len(t, picked, 3)
	assert.ElementsMatch(t, corpus, picked)
	assert.Equal(t, picked, SelectDaily(corpus, day, 3, 2))
}

func TestSelectDaily_DoesNotMutateCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpusOf(15)
	original := make([]models.Question, len(corpus))
	copy(original, corpus)

	SelectDaily(corpus, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), 3, 2)
	assert.Equal(t, original, corpus)
}

func TestDailyService_Daily_CachesSelection(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.SetClient(nil)

	calls := 0
	repo := &questionRepoStub{
		listPublicFn: func(_ context.Context) ([]models.Question, error) {
			calls++
			return corpusOf(12), nil
		},
	}
	svc := NewDailyService(repo, 3, 2)
	svc.now = func() time.Time { return time.Date(2025, 10, 7, 8, 0, 0, 0, time.UTC) }

	first, err := svc.Daily(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, 1, calls)

	second, err := svc.Daily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call should be served from cache")

	assert.True(t, mr.Exists("daily:20251009"), "cache key carries the shifted date")
}

func TestDailyService_Random(t *testing.T) {
	t.Parallel()

	corpus := corpusOf(5)
	repo := &questionRepoStub{
		listPublicFn: func(_ context.Context) ([]models.Question, error) {
			return corpus, nil
		},
	}
	svc := NewDailyService(repo, 3, 2)

	ids := make(map[string]struct{})
	for _, q := range corpus {
		ids[q.ID] = struct{}{}
	}
	for i := 0; i < 20; i++ {
		q, err := svc.Random(context.Background())
		require.NoError(t, err)
		_, ok := ids[q.ID]
		assert.True(t, ok, "random pick must come from the corpus")
	}
}

func TestDailyService_Random_EmptyCorpus(t *testing.T) {
	t.Parallel()

	repo := &questionRepoStub{
		listPublicFn: func(_ context.Context) ([]models.Question, error) {
			return nil, nil
		},
	}
	svc := NewDailyService(repo, 3, 2)

	_, err := svc.Random(context.Background())
	assertNotFoundError(t, err)
}
