package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/request_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/models/response_models"
	"github.com/pawcz12345-dotcom/ironpact/internal/repositories"
	"github.com/pawcz12345-dotcom/ironpact/pkg/utils"
)

type StatsServiceInterface interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*response_models.DashboardStats, error)
	ExerciseHistory(ctx context.Context, userID uuid.UUID, exerciseName string) ([]request_models.HistoryPoint, error)
	SessionVolumes(ctx context.Context, userID uuid.UUID) ([]response_models.SessionVolumePoint, error)
	VolumeByType(ctx context.Context, userID uuid.UUID) (*response_models.VolumeByType, error)
	BodyweightHistory(ctx context.Context, userID uuid.UUID) ([]response_models.BodyweightPoint, error)
	SessionsPerWeek(ctx context.Context, userID uuid.UUID, numWeeks int) ([]response_models.WeekSessionCount, error)
}

type StatsService struct {
	sessionRepo repositories.SessionRepository
}

func NewStatsService(sessionRepo repositories.SessionRepository) StatsServiceInterface {
	return &StatsService{
		sessionRepo: sessionRepo,
	}
}

// CalcE1RM estimates a one-rep max with the Epley formula. A single rep is
// its own estimate; zero or missing weight/reps yield zero.
func CalcE1RM(weight float64, reps int32) int64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return int64(math.Round(weight))
	}
	return int64(math.Round(weight * (1 + float64(reps)/30)))
}

// SetVolume treats missing or non-positive fields as zero.
func SetVolume(weight float64, reps int32) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	return weight * float64(reps)
}

func sessionVolume(s db_models.Session) float64 {
	var vol float64
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			vol += SetVolume(set.Weight, set.Reps)
		}
	}
	return vol
}

// PRSet is the incumbent best for one exercise inside a session log.
type PRSet struct {
	Weight    float64
	Reps      int32
	E1RM      int64
	Date      string
	SessionID uuid.UUID
}

// PersonalRecords finds, per exercise name, the set with the highest e1RM.
// Only a strictly greater e1RM replaces the incumbent, so ties keep the
// first-seen set in session order.
func PersonalRecords(sessions []db_models.Session) map[string]PRSet {
	prs := make(map[string]PRSet)
	for _, session := range sessions {
		for _, ex := range session.Exercises {
			for _, set := range ex.Sets {
				if set.Weight <= 0 || set.Reps <= 0 {
					continue
				}
				e1rm := CalcE1RM(set.Weight, set.Reps)
				if incumbent, ok := prs[ex.Name]; !ok || e1rm > incumbent.E1RM {
					prs[ex.Name] = PRSet{
						Weight:    set.Weight,
						Reps:      set.Reps,
						E1RM:      e1rm,
						Date:      session.Date,
						SessionID: session.ID,
					}
				}
			}
		}
	}
	return prs
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%d", year, week)
}

// CalculateStreak counts consecutive calendar weeks with at least one
// session, walking backward from now. The current week may still be empty
// without breaking the streak; any earlier empty week ends it.
func CalculateStreak(sessions []db_models.Session, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	weeks := make(map[string]struct{})
	for _, s := range sessions {
		d := utils.ParseDate(s.Date)
		if d.IsZero() {
			continue
		}
		weeks[weekKey(d)] = struct{}{}
	}

	streak := 0
	for i := 0; i < 52; i++ {
		if _, ok := weeks[weekKey(now.AddDate(0, 0, -7*i))]; ok {
			streak++
		} else if i > 0 {
			break
		}
	}
	return streak
}

// CountSessionPRs counts the sets flagged as personal records in one session.
func CountSessionPRs(session *db_models.Session) int {
	count := 0
	for _, ex := range session.Exercises {
		for _, set := range ex.Sets {
			if set.IsPR {
				count++
			}
		}
	}
	return count
}

// BuildExerciseHistory filters a session log down to one exercise
// (case-insensitive) and returns chronological per-session points.
func BuildExerciseHistory(sessions []db_models.Session, exerciseName string) []request_models.HistoryPoint {
	sorted := make([]db_models.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	wanted := strings.ToLower(exerciseName)
	var history []request_models.HistoryPoint
	for _, session := range sorted {
		for _, ex := range session.Exercises {
			if strings.ToLower(ex.Name) != wanted {
				continue
			}

			var bestWeight float64
			var bestE1RM int64
			var volume float64
			sets := make([]request_models.HistorySet, 0, len(ex.Sets))
			for _, set := range ex.Sets {
				if set.Weight > bestWeight {
					bestWeight = set.Weight
				}
				if e1rm := CalcE1RM(set.Weight, set.Reps); e1rm > bestE1RM {
					bestE1RM = e1rm
				}
				volume += SetVolume(set.Weight, set.Reps)
				sets = append(sets, request_models.HistorySet{
					Weight: set.Weight,
					Reps:   set.Reps,
					RIR:    set.RIR,
					IsPR:   set.IsPR,
				})
			}

			history = append(history, request_models.HistoryPoint{
				Date:        session.Date,
				BestWeight:  bestWeight,
				TotalVolume: int64(math.Round(volume)),
				BestE1RM:    bestE1RM,
				Sets:        sets,
			})
		}
	}
	return history
}

// BuildDashboard computes the full dashboard block from a loaded session log.
func BuildDashboard(sessions []db_models.Session, now time.Time) *response_models.DashboardStats {
	prs := PersonalRecords(sessions)

	monthStart := utils.StartOfMonth(now)
	weekStart := utils.StartOfWeek(now)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	stats := &response_models.DashboardStats{
		TotalSessions: len(sessions),
		TotalPRs:      len(prs),
		Streak:        CalculateStreak(sessions, now),
	}

	var totalVolume, volumeThisWeek, volumeLastWeek float64
	var durationSum int64
	var durationCount int
	lastDate := ""

	for i := range sessions {
		s := sessions[i]
		d := utils.ParseDate(s.Date)
		vol := sessionVolume(s)
		totalVolume += vol

		if !d.IsZero() {
			if !d.Before(monthStart) {
				stats.SessionsThisMonth++
				if CountSessionPRs(&s) > 0 {
					stats.PRsThisMonth++
				}
			}
			if !d.Before(weekStart) {
				volumeThisWeek += vol
			} else if !d.Before(lastWeekStart) {
				volumeLastWeek += vol
			}
		}

		if s.DurationMinutes > 0 {
			durationSum += int64(s.DurationMinutes)
			durationCount++
		}
		if s.Date > lastDate {
			lastDate = s.Date
		}
	}

	stats.TotalVolume = int64(math.Round(totalVolume))
	stats.VolumeThisWeek = int64(math.Round(volumeThisWeek))
	stats.VolumeLastWeek = int64(math.Round(volumeLastWeek))
	stats.LastSessionDate = lastDate

	if durationCount > 0 {
		avg := int32(math.Round(float64(durationSum) / float64(durationCount)))
		stats.AvgDuration = &avg
	}

	for name, pr := range prs {
		if stats.BestE1RM == nil || pr.E1RM > *stats.BestE1RM {
			e1rm := pr.E1RM
			stats.BestE1RM = &e1rm
			stats.BestE1RMExercise = name
		}
	}

	return stats
}

func (s *StatsService) Dashboard(ctx context.Context, userID uuid.UUID) (*response_models.DashboardStats, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return BuildDashboard(sessions, time.Now().UTC()), nil
}

func (s *StatsService) ExerciseHistory(ctx context.Context, userID uuid.UUID, exerciseName string) ([]request_models.HistoryPoint, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return BuildExerciseHistory(sessions, exerciseName), nil
}

func (s *StatsService) SessionVolumes(ctx context.Context, userID uuid.UUID) ([]response_models.SessionVolumePoint, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})
	points := make([]response_models.SessionVolumePoint, 0, len(sessions))
	for _, session := range sessions {
		points = append(points, response_models.SessionVolumePoint{
			Date:   session.Date,
			Volume: int64(math.Round(sessionVolume(session))),
			Type:   string(session.Type),
		})
	}
	return points, nil
}

func (s *StatsService) VolumeByType(ctx context.Context, userID uuid.UUID) (*response_models.VolumeByType, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	monthStart := utils.StartOfMonth(time.Now().UTC())
	var result response_models.VolumeByType
	for _, session := range sessions {
		d := utils.ParseDate(session.Date)
		if d.IsZero() || d.Before(monthStart) {
			continue
		}
		vol := int64(math.Round(sessionVolume(session)))
		switch session.Type {
		case db_models.SessionPush:
			result.Push += vol
		case db_models.SessionPull:
			result.Pull += vol
		case db_models.SessionLegs:
			result.Legs += vol
		}
	}
	return &result, nil
}

func (s *StatsService) BodyweightHistory(ctx context.Context, userID uuid.UUID) ([]response_models.BodyweightPoint, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	var points []response_models.BodyweightPoint
	for _, session := range sessions {
		if session.Bodyweight == nil || *session.Bodyweight <= 0 {
			continue
		}
		points = append(points, response_models.BodyweightPoint{
			Date:   session.Date,
			Weight: *session.Bodyweight,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}

func (s *StatsService) SessionsPerWeek(ctx context.Context, userID uuid.UUID, numWeeks int) ([]response_models.WeekSessionCount, error) {
	if numWeeks <= 0 {
		numWeeks = 4
	}
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	now := time.Now().UTC()
	counts := make([]response_models.WeekSessionCount, 0, numWeeks)
	for i := numWeeks - 1; i >= 0; i-- {
		weekStart := utils.StartOfWeek(now.AddDate(0, 0, -7*i))
		weekEnd := weekStart.AddDate(0, 0, 7)

		count := 0
		for _, session := range sessions {
			d := utils.ParseDate(session.Date)
			if d.IsZero() {
				continue
			}
			if !d.Before(weekStart) && d.Before(weekEnd) {
				count++
			}
		}
		counts = append(counts, response_models.WeekSessionCount{
			WeekStart: weekStart.Format(utils.DateLayout),
			Count:     count,
		})
	}
	return counts, nil
}
