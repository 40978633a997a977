package models

import "time"

// FeatureClick represents a single tracked UI interaction.
// Records are written once and never updated or deleted.
type FeatureClick struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FeatureName string    `json:"feature_name"`
	Timestamp   time.Time `json:"timestamp"`
}
