package models

// FeatureCount represents click volume for a single feature
type FeatureCount struct {
	Feature string `json:"feature"`
	Clicks  int64  `json:"clicks"`
}

// DailyCount represents click volume for a single calendar day
type DailyCount struct {
	Date   string `json:"date"` // Format: YYYY-MM-DD
	Clicks int64  `json:"clicks"`
}

// AnalyticsReport holds both chart series computed under one filter set.
// Days and features with no matching clicks are omitted, not zero-filled.
type AnalyticsReport struct {
	BarData  []FeatureCount `json:"bar_data"`
	LineData []DailyCount   `json:"line_data"`
}
