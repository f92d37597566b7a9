package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawcz12345-dotcom/ironpact/internal/models/db_models"
)

func TestCalcE1RM(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int32
		want   int64
	}{
		{"single rep is its own estimate", 100, 1, 100},
		{"epley five reps", 100, 5, 117},
		{"epley ten reps", 60, 10, 80},
		{"epley eight reps rounds", 82.5, 8, 105},
		{"zero weight", 0, 5, 0},
		{"zero reps", 100, 0, 0},
		{"negative reps", 100, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcE1RM(tt.weight, tt.reps))
		})
	}
}

func sessionOn(date string, exercises ...db_models.SessionExercise) db_models.Session {
	return db_models.Session{
		Date:      date,
		Type:      db_models.SessionPush,
		Exercises: exercises,
	}
}

func exercise(name string, sets ...db_models.SetEntry) db_models.SessionExercise {
	return db_models.SessionExercise{Name: name, Sets: sets}
}

func set(weight float64, reps int32) db_models.SetEntry {
	return db_models.SetEntry{Weight: weight, Reps: reps}
}

func TestCalculateStreak(t *testing.T) {
	// A Wednesday, so "this week" and "last week" are unambiguous.
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	t.Run("no sessions", func(t *testing.T) {
		assert.Equal(t, 0, CalculateStreak(nil, now))
	})

	t.Run("current week only", func(t *testing.T) {
		sessions := []db_models.Session{sessionOn("2025-03-10")}
		assert.Equal(t, 1, CalculateStreak(sessions, now))
	})

	t.Run("empty current week does not break the streak", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-03-05"),
			sessionOn("2025-02-26"),
			sessionOn("2025-02-19"),
		}
		assert.Equal(t, 3, CalculateStreak(sessions, now))
	})

	t.Run("gap before last week ends the streak", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-03-11"),
			sessionOn("2025-03-05"),
			// 2025-02-24..03-02 has nothing.
			sessionOn("2025-02-19"),
		}
		assert.Equal(t, 2, CalculateStreak(sessions, now))
	})

	t.Run("several sessions in one week count once", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-03-10"),
			sessionOn("2025-03-11"),
			sessionOn("2025-03-12"),
		}
		assert.Equal(t, 1, CalculateStreak(sessions, now))
	})

	t.Run("unparseable dates are ignored", func(t *testing.T) {
		sessions := []db_models.Session{sessionOn("garbage")}
		assert.Equal(t, 0, CalculateStreak(sessions, now))
	})
}

func TestPersonalRecords(t *testing.T) {
	t.Run("strictly greater replaces, ties keep first", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-01-01", exercise("Bench Press", set(100, 5))),
			sessionOn("2025-01-08", exercise("Bench Press", set(100, 5))), // same e1RM
			sessionOn("2025-01-15", exercise("Bench Press", set(105, 5))),
		}
		prs := PersonalRecords(sessions)
		require.Contains(t, prs, "Bench Press")
		assert.Equal(t, "2025-01-15", prs["Bench Press"].Date)
		assert.Equal(t, CalcE1RM(105, 5), prs["Bench Press"].E1RM)
	})

	t.Run("tie keeps the earlier session", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-01-01", exercise("Squat", set(140, 3))),
			sessionOn("2025-01-08", exercise("Squat", set(140, 3))),
		}
		prs := PersonalRecords(sessions)
		assert.Equal(t, "2025-01-01", prs["Squat"].Date)
	})

	t.Run("zero sets never qualify", func(t *testing.T) {
		sessions := []db_models.Session{
			sessionOn("2025-01-01", exercise("Deadlift", set(0, 5), set(100, 0))),
		}
		assert.Empty(t, PersonalRecords(sessions))
	})
}

func TestBuildExerciseHistory(t *testing.T) {
	sessions := []db_models.Session{
		sessionOn("2025-01-08", exercise("bench press", set(100, 5), set(95, 8))),
		sessionOn("2025-01-01", exercise("Bench Press", set(90, 5))),
		sessionOn("2025-01-05", exercise("Squat", set(140, 5))),
	}

	history := BuildExerciseHistory(sessions, "BENCH PRESS")
	require.Len(t, history, 2)

	// Chronological regardless of input order.
	assert.Equal(t, "2025-01-01", history[0].Date)
	assert.Equal(t, "2025-01-08", history[1].Date)

	assert.Equal(t, 100.0, history[1].BestWeight)
	assert.Equal(t, int64(100*5+95*8), history[1].TotalVolume)
	// Best e1RM can come from a lighter, higher-rep set.
	wantE1RM := CalcE1RM(95, 8)
	if e := CalcE1RM(100, 5); e > wantE1RM {
		wantE1RM = e
	}
	assert.Equal(t, wantE1RM, history[1].BestE1RM)
	assert.Len(t, history[1].Sets, 2)
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	bw := 82.5
	sessions := []db_models.Session{
		{
			BaseModel:       db_models.BaseModel{},
			Date:            "2025-03-10",
			Type:            db_models.SessionPush,
			DurationMinutes: 60,
			Bodyweight:      &bw,
			Exercises: []db_models.SessionExercise{
				exercise("Bench Press", db_models.SetEntry{Weight: 100, Reps: 5, IsPR: true}),
			},
		},
		sessionOn("2025-02-10", exercise("Bench Press", set(90, 5))),
	}
	sessions[1].DurationMinutes = 50

	stats := BuildDashboard(sessions, now)

	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.SessionsThisMonth)
	assert.Equal(t, 1, stats.TotalPRs)
	assert.Equal(t, 1, stats.PRsThisMonth)
	assert.Equal(t, int64(100*5+90*5), stats.TotalVolume)
	assert.Equal(t, int64(500), stats.VolumeThisWeek)
	assert.Equal(t, int64(0), stats.VolumeLastWeek)
	assert.Equal(t, "2025-03-10", stats.LastSessionDate)
	require.NotNil(t, stats.AvgDuration)
	assert.Equal(t, int32(55), *stats.AvgDuration)
	require.NotNil(t, stats.BestE1RM)
	assert.Equal(t, CalcE1RM(100, 5), *stats.BestE1RM)
	assert.Equal(t, "Bench Press", stats.BestE1RMExercise)
}
