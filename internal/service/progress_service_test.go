package service

import (
	"context"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(now string) (*ProgressService, *repository.ProgressRepository) {
	repo := repository.NewProgressRepository()
	svc := NewProgressService(repo)
	svc.now = fixedClock(now)
	return svc, repo
}

func TestProgress_GetInitializesDefaults(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, repo := newProgressService("2026-03-10T08:00:00Z")

	p, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Streak)
	assert.Equal(t, "0h", p.TotalStudyTime)
	assert.Equal(t, []string{}, p.Badges)
	assert.Equal(t, "2026-03-10", p.LastActiveDate)
	assert.Equal(t, "2026-03-10", p.CreatedAt)

	stored, ok, err := repo.Load(ctx, scope)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p, stored)
}

func TestProgress_UpdateShallowMerge(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newProgressService("2026-03-10T08:00:00Z")

	hours := 2.5
	studyTime := "2h 30m"
	p, err := svc.Update(ctx, scope, model.ProgressPatch{StudyHours: &hours, TotalStudyTime: &studyTime})
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.StudyHours)
	assert.Equal(t, "2h 30m", p.TotalStudyTime)
	assert.Equal(t, 0, p.Points)

	again, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestProgress_StreakSameDayIsNoop(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, repo := newProgressService("2026-03-10T08:00:00Z")
	require.NoError(t, repo.Save(ctx, scope, model.UserProgress{Streak: 4, LastActiveDate: "2026-03-09", Badges: []string{}}))

	first, err := svc.UpdateStreak(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Streak)
	assert.Equal(t, "2026-03-10", first.LastActiveDate)

	second, err := svc.UpdateStreak(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestProgress_StreakContinuity(t *testing.T) {
	cases := []struct {
		name       string
		lastActive string
		streak     int
		want       int
	}{
		{"yesterday continues", "2026-03-09", 6, 7},
		{"three days ago resets", "2026-03-07", 6, 1},
		{"month boundary continues", "2026-02-28", 2, 3},
		{"future date resets", "2026-03-12", 9, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			scope := newScope()
			now := "2026-03-10T23:59:00Z"
			if tc.lastActive == "2026-02-28" {
				now = "2026-03-01T00:01:00Z"
			}
			svc, repo := newProgressService(now)
			require.NoError(t, repo.Save(ctx, scope, model.UserProgress{Streak: tc.streak, LastActiveDate: tc.lastActive}))

			p, err := svc.UpdateStreak(ctx, scope)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Streak)
			assert.Equal(t, svc.today(), p.LastActiveDate)
		})
	}
}

func TestProgress_StreakUsesUTCDate(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	// 2026-03-10T01:00+05:00 is still 2026-03-09 in UTC
	svc, repo := newProgressService("2026-03-10T01:00:00+05:00")
	require.NoError(t, repo.Save(ctx, scope, model.UserProgress{Streak: 2, LastActiveDate: "2026-03-09"}))

	p, err := svc.UpdateStreak(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Streak)
}

func TestProgress_AddPoints(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newProgressService("2026-03-10T08:00:00Z")

	_, err := svc.AddPoints(ctx, scope, 10)
	require.NoError(t, err)
	p, err := svc.AddPoints(ctx, scope, 15)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Points)

	_, err = svc.AddPoints(ctx, scope, -1)
	assert.True(t, util.IsValidation(err))
}

func TestProgress_AddBadgeIdempotent(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newProgressService("2026-03-10T08:00:00Z")

	_, err := svc.AddBadge(ctx, scope, "First Test")
	require.NoError(t, err)
	p, err := svc.AddBadge(ctx, scope, "First Test")
	require.NoError(t, err)
	assert.Equal(t, []string{"First Test"}, p.Badges)

	p, err = svc.AddBadge(ctx, scope, "Week Streak")
	require.NoError(t, err)
	assert.Equal(t, []string{"First Test", "Week Streak"}, p.Badges)

	_, err = svc.AddBadge(ctx, scope, "  ")
	assert.True(t, util.IsValidation(err))
}

func TestProgress_UpdateDeduplicatesBadges(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newProgressService("2026-03-10T08:00:00Z")

	badges := []string{"Star", "Week Streak", "Star"}
	p, err := svc.Update(ctx, scope, model.ProgressPatch{Badges: &badges})
	require.NoError(t, err)
	assert.Equal(t, []string{"Star", "Week Streak"}, p.Badges)

	p, err = svc.AddBadge(ctx, scope, "Star")
	require.NoError(t, err)
	assert.Equal(t, []string{"Star", "Week Streak"}, p.Badges)

	stored, err := svc.Get(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Star", "Week Streak"}, stored.Badges)
}
