package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	mem "github.com/pawcz12345-dotcom/ironpact/pkg/memcache"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

const (
	// CoachCost is the token price of one fresh recommendation. Cache hits
	// are free.
	CoachCost int64 = 2

	// CacheWindow bounds how old a cached recommendation may be before it
	// is ignored at read time.
	CacheWindow = 24 * time.Hour

	// HistoryPromptPoints caps how many recent history points feed the
	// prompt.
	HistoryPromptPoints = 5

	// CoachTimeout bounds one provider round trip.
	CoachTimeout = 30 * time.Second
)

const coachSystemPrompt = `You are an experienced strength coach specialising in progressive overload. ` +
	`You analyse a lifter's recent history for one exercise and prescribe the next session's target. ` +
	`Respond with a single JSON object and nothing else, using exactly these fields: ` +
	`"recommendation" (one short sentence), "reasoning" (2-3 sentences), ` +
	`"target_sets" (integer), "target_reps" (integer), "target_weight" (number, same unit as the history), ` +
	`"confidence" ("high", "medium" or "low"), ` +
	`"trend" ("progressing", "stalling", "regressing" or "insufficient_data"), ` +
	`"warning" (string or null). Never prescribe a weight jump above 10% unless the lifter is clearly underloading.`

type CoachServiceInterface interface {
	Recommend(ctx context.Context, userID uuid.UUID, req *request_models.RecommendationRequest) (*response_models.RecommendationResponse, error)
}

type CoachService struct {
	client       utils.CoachClientInterface
	recRepo      repositories.RecommendationRepository
	tokenRepo    repositories.TokenRepository
	sessionRepo  repositories.SessionRepository
	balanceCache mem.BalanceStore
	group        singleflight.Group
}

func NewCoachService(
	client utils.CoachClientInterface,
	recRepo repositories.RecommendationRepository,
	tokenRepo repositories.TokenRepository,
	sessionRepo repositories.SessionRepository,
	balanceCache mem.BalanceStore,
) CoachServiceInterface {
	return &CoachService{
		client:       client,
		recRepo:      recRepo,
		tokenRepo:    tokenRepo,
		sessionRepo:  sessionRepo,
		balanceCache: balanceCache,
	}
}

type coachOutcome struct {
	result response_models.Recommendation
	cached bool
	spent  int64
	// claimed lets exactly one coalesced caller report the charge.
	claimed atomic.Bool
}

func (c *CoachService) Recommend(ctx context.Context, userID uuid.UUID, req *request_models.RecommendationRequest) (*response_models.RecommendationResponse, error) {
	exerciseName := strings.TrimSpace(req.ExerciseName)
	if exerciseName == "" {
		return nil, utils.ErrMissingInput
	}

	history := req.History
	if len(history) == 0 {
		sessions, err := c.sessionRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		history = BuildExerciseHistory(sessions, exerciseName)
	}
	// Two points is the minimum the model can read a trend from. Checked
	// before the balance so a short history never costs anything.
	if len(history) < 2 {
		return nil, utils.ErrInsufficientHistory
	}

	key := repositories.CacheKey(userID, exerciseName)

	// Concurrent requests for the same key collapse onto one flight, so one
	// provider call and one charge serve them all.
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.recommend(ctx, userID, key, exerciseName, req.Unit, history)
	})
	if err != nil {
		return nil, err
	}

	outcome := v.(*coachOutcome)
	resp := &response_models.RecommendationResponse{
		Result: outcome.result,
		Cached: outcome.cached,
	}
	if outcome.spent > 0 {
		// One charge happened inside the flight; the first caller through
		// here owns it, everyone else coalesced sees a cache hit.
		if outcome.claimed.CompareAndSwap(false, true) {
			resp.TokensSpent = outcome.spent
		} else {
			resp.Cached = true
		}
	}
	return resp, nil
}

func (c *CoachService) recommend(ctx context.Context, userID uuid.UUID, key, exerciseName, unit string, history []request_models.HistoryPoint) (*coachOutcome, error) {
	since := time.Now().UTC().Add(-CacheWindow)
	entry, err := c.recRepo.FindFresh(ctx, key, since)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if entry != nil {
		var rec response_models.Recommendation
		if err := json.Unmarshal(entry.Result, &rec); err == nil {
			return &coachOutcome{result: rec, cached: true}, nil
		}
		// A corrupt row is treated as a miss and overwritten by the fresh
		// result below.
	}

	// Cache hits are free, so the token gate only applies to a miss. Cheap
	// pre-check so a broke caller never reaches the provider; the
	// authoritative check is the conditional decrement inside InsertPaid.
	balance, err := c.tokenRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if balance < CoachCost {
		return nil, utils.ErrInsufficientTokens
	}

	callCtx, cancel := context.WithTimeout(ctx, CoachTimeout)
	defer cancel()

	raw, err := c.client.Generate(callCtx, coachSystemPrompt, buildCoachPrompt(exerciseName, unit, history))
	if err != nil {
		return nil, utils.ErrAIService
	}

	rec, err := parseRecommendation(raw)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, utils.ErrAIParse
	}

	cacheEntry := &db_models.RecommendationCache{
		CacheKey: key,
		UserID:   userID,
		Result:   payload,
	}
	if err := c.recRepo.InsertPaid(ctx, cacheEntry, CoachCost, "coach: "+exerciseName); err != nil {
		if err == utils.ErrInsufficientTokens {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	c.balanceCache.Bump(userID, -CoachCost)

	return &coachOutcome{result: *rec, spent: CoachCost}, nil
}

// buildCoachPrompt renders the trailing history points oldest-first, one line
// per session.
func buildCoachPrompt(exerciseName, unit string, history []request_models.HistoryPoint) string {
	if unit != "lbs" {
		unit = "kg"
	}
	points := history
	if len(points) > HistoryPromptPoints {
		points = points[len(points)-HistoryPromptPoints:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Exercise: %s\nUnit: %s\nRecent sessions (oldest first):\n", exerciseName, unit)
	for _, p := range points {
		fmt.Fprintf(&b, "- %s: best weight %.1f%s, est. 1RM %d, volume %d, sets:", p.Date, p.BestWeight, unit, p.BestE1RM, p.TotalVolume)
		for _, set := range p.Sets {
			fmt.Fprintf(&b, " %.1fx%d", set.Weight, set.Reps)
			if set.RIR != nil {
				fmt.Fprintf(&b, "@RIR%d", *set.RIR)
			}
			if set.IsPR {
				b.WriteString("(PR)")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("Prescribe the next session for this exercise.")
	return b.String()
}

var (
	validConfidence = map[string]bool{"high": true, "medium": true, "low": true}
	validTrend      = map[string]bool{"progressing": true, "stalling": true, "regressing": true, "insufficient_data": true}
)

// parseRecommendation decodes the provider text against the fixed schema.
// Anything structurally off fails the whole request; no charge happens on a
// parse failure because InsertPaid never runs.
func parseRecommendation(raw string) (*response_models.Recommendation, error) {
	cleaned := utils.ExtractJSONObject(raw)

	var rec response_models.Recommendation
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil, utils.ErrAIParse
	}
	if strings.TrimSpace(rec.Recommendation) == "" || strings.TrimSpace(rec.Reasoning) == "" {
		return nil, utils.ErrAIParse
	}
	if rec.TargetSets <= 0 || rec.TargetReps <= 0 || rec.TargetWeight < 0 {
		return nil, utils.ErrAIParse
	}
	if !validConfidence[rec.Confidence] || !validTrend[rec.Trend] {
		return nil, utils.ErrAIParse
	}
	return &rec, nil
}
