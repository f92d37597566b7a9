package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

const validCoachJSON = `{"recommendation":"Add 2.5kg to your top set","reasoning":"Weight has climbed steadily with reps held.","target_sets":3,"target_reps":5,"target_weight":102.5,"confidence":"high","trend":"progressing","warning":null}`

type stubCoachClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
	entered  chan struct{}
	release  chan struct{}
}

func (s *stubCoachClient) Generate(ctx context.Context, system, user string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.prompts = append(s.prompts, user)
	s.mu.Unlock()

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return s.response, s.err
}

func (s *stubCoachClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRecRepo struct {
	mu        sync.Mutex
	fresh     *db_models.RecommendationCache
	inserts   []*db_models.RecommendationCache
	charges   []int64
	err       error
	lastSince time.Time
}

// FindFresh honors the freshness cutoff the way the SQL filter does.
func (s *stubRecRepo) FindFresh(ctx context.Context, cacheKey string, since time.Time) (*db_models.RecommendationCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSince = since
	if s.fresh != nil && s.fresh.CreatedAt >= since.Unix() {
		return s.fresh, nil
	}
	return nil, nil
}

func (s *stubRecRepo) InsertPaid(ctx context.Context, entry *db_models.RecommendationCache, cost int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.inserts = append(s.inserts, entry)
	s.charges = append(s.charges, cost)
	return nil
}

func history(n int) []request_models.HistoryPoint {
	points := make([]request_models.HistoryPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, request_models.HistoryPoint{
			Date:        fmt.Sprintf("2025-03-%02d", i+1),
			BestWeight:  100 + float64(i),
			TotalVolume: 1500,
			BestE1RM:    117 + int64(i),
			Sets:        []request_models.HistorySet{{Weight: 100 + float64(i), Reps: 5}},
		})
	}
	return points
}

func newCoachService(client utils.CoachClientInterface, recRepo *stubRecRepo, tokenRepo *stubTokenRepo, sessionRepo *stubSessionRepo) CoachServiceInterface {
	return NewCoachService(client, recRepo, tokenRepo, sessionRepo, mem.NewBalanceCache(time.Minute))
}

func cacheRowFrom(payload string, createdAt int64) *db_models.RecommendationCache {
	row := &db_models.RecommendationCache{Result: []byte(payload)}
	row.CreatedAt = createdAt
	return row
}

func TestRecommend_MissingExerciseName(t *testing.T) {
	svc := newCoachService(&stubCoachClient{}, &stubRecRepo{}, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "  ",
		History:      history(3),
	})
	assert.ErrorIs(t, err, utils.ErrMissingInput)
}

func TestRecommend_NoHistoryAnywhere(t *testing.T) {
	svc := newCoachService(&stubCoachClient{}, &stubRecRepo{}, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientHistory)
}

func TestRecommend_ShortHistoryBeatsBalanceCheck(t *testing.T) {
	// A single point fails on history even when the account is also broke.
	client := &stubCoachClient{response: validCoachJSON}
	svc := newCoachService(client, &stubRecRepo{}, &stubTokenRepo{balance: 0}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(1),
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientHistory)
	assert.Equal(t, 0, client.callCount())
}

func TestRecommend_DerivesHistoryFromSessionLog(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	sessionRepo := &stubSessionRepo{sessions: []db_models.Session{
		sessionOn("2025-03-01", exercise("Bench Press", set(100, 5))),
		sessionOn("2025-03-05", exercise("Bench Press", set(102.5, 5))),
	}}
	svc := newCoachService(client, &stubRecRepo{}, &stubTokenRepo{balance: 10}, sessionRepo)

	resp, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "bench press",
	})
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, 1, client.callCount())
}

func TestRecommend_InsufficientBalanceBeforeProviderCall(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	svc := newCoachService(client, &stubRecRepo{}, &stubTokenRepo{balance: CoachCost - 1}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientTokens)
	assert.Equal(t, 0, client.callCount())
}

func TestRecommend_CacheHitIsFree(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	recRepo := &stubRecRepo{fresh: cacheRowFrom(validCoachJSON, time.Now().Unix())}
	svc := newCoachService(client, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	resp, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, int64(0), resp.TokensSpent)
	assert.Equal(t, 0, client.callCount())
	assert.Empty(t, recRepo.charges)
	assert.Equal(t, "progressing", resp.Result.Trend)
}

func TestRecommend_CacheHitServedToBrokeAccount(t *testing.T) {
	// An already-paid cache entry stays readable at zero balance; the token
	// gate only applies to a miss.
	client := &stubCoachClient{response: validCoachJSON}
	recRepo := &stubRecRepo{fresh: cacheRowFrom(validCoachJSON, time.Now().Unix())}
	svc := newCoachService(client, recRepo, &stubTokenRepo{balance: 0}, &stubSessionRepo{})

	resp, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, int64(0), resp.TokensSpent)
	assert.Equal(t, 0, client.callCount())
}

func TestRecommend_StaleCacheRowIsIgnored(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	stale := cacheRowFrom(validCoachJSON, time.Now().Add(-25*time.Hour).Unix())
	recRepo := &stubRecRepo{fresh: stale}
	svc := newCoachService(client, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	resp, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, CoachCost, resp.TokensSpent)
	assert.Equal(t, 1, client.callCount())

	// The cutoff handed to the lookup is now minus the freshness window.
	wantSince := time.Now().UTC().Add(-CacheWindow)
	assert.WithinDuration(t, wantSince, recRepo.lastSince, time.Minute)
}

func TestRecommend_FreshCallChargesAndCaches(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	recRepo := &stubRecRepo{}
	userID := uuid.New()
	svc := newCoachService(client, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	resp, err := svc.Recommend(context.Background(), userID, &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, CoachCost, resp.TokensSpent)
	assert.Equal(t, 102.5, resp.Result.TargetWeight)

	require.Len(t, recRepo.inserts, 1)
	assert.Contains(t, recRepo.inserts[0].CacheKey, "overload_")
	assert.Contains(t, recRepo.inserts[0].CacheKey, "Bench Press")
	assert.Equal(t, []int64{CoachCost}, recRepo.charges)
}

func TestRecommend_ProviderFailureIsNotCharged(t *testing.T) {
	client := &stubCoachClient{err: errors.New("rate limited")}
	recRepo := &stubRecRepo{}
	svc := newCoachService(client, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	assert.ErrorIs(t, err, utils.ErrAIService)
	assert.Empty(t, recRepo.charges)
}

func TestRecommend_UnparseableResponseIsNotCharged(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "take it easy this week"},
		{"missing fields", `{"recommendation":"x"}`},
		{"bad confidence", strings.Replace(validCoachJSON, `"high"`, `"certain"`, 1)},
		{"bad trend", strings.Replace(validCoachJSON, `"progressing"`, `"upward"`, 1)},
		{"zero sets", strings.Replace(validCoachJSON, `"target_sets":3`, `"target_sets":0`, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recRepo := &stubRecRepo{}
			svc := newCoachService(&stubCoachClient{response: tt.response}, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

			_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
				ExerciseName: "Bench Press",
				History:      history(3),
			})
			assert.ErrorIs(t, err, utils.ErrAIParse)
			assert.Empty(t, recRepo.charges)
		})
	}
}

func TestRecommend_AcceptsFencedJSON(t *testing.T) {
	fenced := "Here you go:\n```json\n" + validCoachJSON + "\n```"
	svc := newCoachService(&stubCoachClient{response: fenced}, &stubRecRepo{}, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	resp, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "high", resp.Result.Confidence)
}

func TestRecommend_PromptUsesLastFivePoints(t *testing.T) {
	client := &stubCoachClient{response: validCoachJSON}
	svc := newCoachService(client, &stubRecRepo{}, &stubTokenRepo{balance: 10}, &stubSessionRepo{})

	_, err := svc.Recommend(context.Background(), uuid.New(), &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(8),
	})
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.NotContains(t, prompt, "2025-03-03")
	assert.Contains(t, prompt, "2025-03-04")
	assert.Contains(t, prompt, "2025-03-08")
}

func TestRecommend_ConcurrentCallsCollapse(t *testing.T) {
	client := &stubCoachClient{
		response: validCoachJSON,
		entered:  make(chan struct{}, 1),
		release:  make(chan struct{}),
	}
	recRepo := &stubRecRepo{}
	userID := uuid.New()
	cache := mem.NewBalanceCache(time.Minute)
	cache.SetAuthoritative(userID, 10)
	svc := NewCoachService(client, recRepo, &stubTokenRepo{balance: 10}, &stubSessionRepo{}, cache)

	req := &request_models.RecommendationRequest{
		ExerciseName: "Bench Press",
		History:      history(3),
	}

	var wg sync.WaitGroup
	results := make([]*response_models.RecommendationResponse, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.Recommend(context.Background(), userID, req)
	}()

	// Wait for the first flight to reach the provider, then pile on.
	<-client.entered
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = svc.Recommend(context.Background(), userID, req)
	}()

	// Give the second call time to join the flight before releasing.
	time.Sleep(50 * time.Millisecond)
	close(client.release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, client.callCount())
	assert.Len(t, recRepo.charges, 1)

	// Exactly one caller reports the charge; the joiner reads as a cache
	// hit. The shadow balance moves by one cost, not one per caller.
	var spenders, cachedHits int
	for _, resp := range results {
		require.NotNil(t, resp)
		if resp.TokensSpent == CoachCost {
			spenders++
		}
		if resp.Cached {
			cachedHits++
		}
	}
	assert.Equal(t, 1, spenders)
	assert.Equal(t, 1, cachedHits)

	shadow, _, ok := cache.Get(userID)
	require.True(t, ok)
	assert.Equal(t, int64(8), shadow)
}
