package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/library/model"
)

func TestResolveTotal(t *testing.T) {
	assert.Equal(t, 120, ResolveTotal(120, 90, 80))
	assert.Equal(t, 90, ResolveTotal(0, 90, 80))
	assert.Equal(t, 80, ResolveTotal(0, 0, 80))
	assert.Equal(t, 0, ResolveTotal(0, 0, 0))
}

func TestApplySync(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     model.ReadingProgressModel
		bookTotal int
		in        SyncInput
		applied   bool
		page      int
		furthest  int
		percent   float64
		seconds   int64
		completed bool
	}{
		{
			name:      "first sync",
			bookTotal: 200,
			in:        SyncInput{CurrentPage: 10, ElapsedSeconds: 20, ClientTime: now},
			applied:   true, page: 10, furthest: 10, percent: 5, seconds: 20,
		},
		{
			name:      "page clamped to total",
			bookTotal: 50,
			in:        SyncInput{CurrentPage: 75, ClientTime: now},
			applied:   true, page: 50, furthest: 50, percent: 100, completed: true,
		},
		{
			name:      "page below one",
			bookTotal: 50,
			in:        SyncInput{CurrentPage: 0, ClientTime: now},
			applied:   true, page: 1, furthest: 1, percent: 2,
		},
		{
			name:      "going back keeps furthest",
			start:     model.ReadingProgressModel{FurthestPage: 30, CurrentPage: 30, ReadingSeconds: 100, ClientUpdatedAt: now.Add(-time.Minute)},
			bookTotal: 90,
			in:        SyncInput{CurrentPage: 3, ElapsedSeconds: 15, ClientTime: now},
			applied:   true, page: 3, furthest: 30, percent: 33.33, seconds: 115,
		},
		{
			name:      "elapsed capped",
			bookTotal: 100,
			in:        SyncInput{CurrentPage: 2, ElapsedSeconds: 3600, ClientTime: now},
			applied:   true, page: 2, furthest: 2, percent: 2, seconds: MaxElapsedPerSync,
		},
		{
			name:      "negative elapsed ignored",
			bookTotal: 100,
			in:        SyncInput{CurrentPage: 2, ElapsedSeconds: -5, ClientTime: now},
			applied:   true, page: 2, furthest: 2, percent: 2,
		},
		{
			name:      "stale client time",
			start:     model.ReadingProgressModel{CurrentPage: 40, FurthestPage: 40, TotalPages: 100, Percent: 40, ClientUpdatedAt: now},
			bookTotal: 100,
			in:        SyncInput{CurrentPage: 10, ElapsedSeconds: 30, ClientTime: now.Add(-10 * time.Second)},
			applied:   false, page: 40, furthest: 40, percent: 40,
		},
		{
			name:      "resent sync with same client time",
			start:     model.ReadingProgressModel{CurrentPage: 40, FurthestPage: 40, TotalPages: 100, Percent: 40, ReadingSeconds: 30, ClientUpdatedAt: now},
			bookTotal: 100,
			in:        SyncInput{CurrentPage: 41, ElapsedSeconds: 30, ClientTime: now},
			applied:   false, page: 40, furthest: 40, percent: 40, seconds: 30,
		},
		{
			name:      "client total when book unknown",
			in:        SyncInput{CurrentPage: 5, TotalPages: 20, ClientTime: now},
			applied:   true, page: 5, furthest: 5, percent: 25,
		},
		{
			name:    "no total known",
			in:      SyncInput{CurrentPage: 5, ClientTime: now},
			applied: true, page: 5, furthest: 5, percent: 0,
		},
		{
			name:      "completion is sticky",
			start:     model.ReadingProgressModel{FurthestPage: 10, IsCompleted: true, Percent: 100, TotalPages: 10},
			bookTotal: 12,
			in:        SyncInput{CurrentPage: 4, ClientTime: now},
			applied:   true, page: 4, furthest: 10, percent: 100, completed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			got := ApplySync(&p, tt.bookTotal, tt.in, now)
			assert.Equal(t, tt.applied, got)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.furthest, p.FurthestPage)
			assert.InDelta(t, tt.percent, p.Percent, 0.001)
			assert.Equal(t, tt.seconds, p.ReadingSeconds)
			assert.Equal(t, tt.completed, p.IsCompleted)
		})
	}
}

func TestApplySyncCompletedAtSetOnce(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := model.ReadingProgressModel{}

	assert.True(t, ApplySync(&p, 3, SyncInput{CurrentPage: 3, ClientTime: now}, now))
	first := p.CompletedAt
	if assert.NotNil(t, first) {
		assert.Equal(t, now, *first)
	}

	later := now.Add(time.Hour)
	assert.True(t, ApplySync(&p, 3, SyncInput{CurrentPage: 3, ClientTime: later}, later))
	assert.Equal(t, now, *p.CompletedAt)
}

func TestApplySyncFutureClientTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := model.ReadingProgressModel{}

	assert.True(t, ApplySync(&p, 10, SyncInput{CurrentPage: 2, ClientTime: now.Add(24 * time.Hour)}, now))
	assert.Equal(t, now, p.ClientUpdatedAt)
	assert.True(t, ApplySync(&p, 10, SyncInput{CurrentPage: 3, ClientTime: now.Add(time.Second)}, now.Add(time.Second)))
	assert.Equal(t, 3, p.CurrentPage)
}
