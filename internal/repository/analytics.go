package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/selfviz/analytics-service/internal/analytics"
	"github.com/selfviz/analytics-service/internal/models"
)

// ClicksByFeature returns click counts grouped by feature name under the
// given filter. Features with no matching clicks are omitted.
func (r *Repository) ClicksByFeature(ctx context.Context, f analytics.Filter) ([]models.FeatureCount, error) {
	where, args := f.Predicates(0)
	query := fmt.Sprintf(`
		SELECT fc.feature_name, COUNT(fc.id)
		FROM feature_clicks fc
		JOIN users u ON u.id = fc.user_id
		WHERE %s
		GROUP BY fc.feature_name
		ORDER BY fc.feature_name`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks by feature: %w", err)
	}
	defer rows.Close()

	counts := []models.FeatureCount{}
	for rows.Next() {
		var c models.FeatureCount
		if err := rows.Scan(&c.Feature, &c.Clicks); err != nil {
			return nil, fmt.Errorf("failed to scan feature count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feature counts: %w", err)
	}
	return counts, nil
}

// ClicksByDay returns click counts grouped by the UTC calendar day of the
// click timestamp, under the given filter. Days with no matching clicks are
// omitted.
func (r *Repository) ClicksByDay(ctx context.Context, f analytics.Filter) ([]models.DailyCount, error) {
	where, args := f.Predicates(0)
	query := fmt.Sprintf(`
		SELECT (fc.timestamp AT TIME ZONE 'UTC')::date AS day, COUNT(fc.id)
		FROM feature_clicks fc
		JOIN users u ON u.id = fc.user_id
		WHERE %s
		GROUP BY day
		ORDER BY day`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks by day: %w", err)
	}
	defer rows.Close()

	counts := []models.DailyCount{}
	for rows.Next() {
		var day time.Time
		var clicks int64
		if err := rows.Scan(&day, &clicks); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, models.DailyCount{
			Date:   day.Format("2006-01-02"),
			Clicks: clicks,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily counts: %w", err)
	}
	return counts, nil
}

// CountClicksSince returns the total number of clicks recorded at or after
// the given instant. Used by the daily summary job.
func (r *Repository) CountClicksSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	query := `SELECT COUNT(id) FROM feature_clicks WHERE timestamp >= $1`
	if err := r.db.QueryRowContext(ctx, query, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return total, nil
}
