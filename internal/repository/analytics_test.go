package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selfviz/analytics-service/internal/analytics"
	"github.com/selfviz/analytics-service/internal/models"
)

func TestClicksByFeature(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	filter := analytics.Filter{Start: start, End: end, AgeGroup: analytics.AgeGroup18To40, Gender: "female"}

	rows := sqlmock.NewRows([]string{"feature_name", "count"}).
		AddRow("date_filter", int64(12)).
		AddRow("export_data", int64(3))

	mock.ExpectQuery(`SELECT fc\.feature_name, COUNT\(fc\.id\)`).
		WithArgs(start, end, "female").
		WillReturnRows(rows)

	counts, err := repo.ClicksByFeature(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, []models.FeatureCount{
		{Feature: "date_filter", Clicks: 12},
		{Feature: "export_data", Clicks: 3},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClicksByFeatureEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	filter := analytics.Filter{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery(`SELECT fc\.feature_name, COUNT\(fc\.id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"feature_name", "count"}))

	counts, err := repo.ClicksByFeature(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestClicksByDay(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"day", "count"}).
		AddRow(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), int64(7)).
		AddRow(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), int64(2))

	mock.ExpectQuery(`GROUP BY day`).
		WithArgs(start, end).
		WillReturnRows(rows)

	counts, err := repo.ClicksByDay(context.Background(), analytics.Filter{Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, []models.DailyCount{
		{Date: "2025-03-04", Clicks: 7},
		{Date: "2025-03-05", Clicks: 2},
	}, counts)
}

func TestCountClicksSince(t *testing.T) {
	repo, mock := newMockRepo(t)
	since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(id\) FROM feature_clicks`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := repo.CountClicksSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}
