package model

import (
	"time"
)

// RequestStatistics summarizes a company's requests submitted within a time range
type RequestStatistics struct {
	Total              int                     `json:"total"`
	ByStatus           map[CanonicalStatus]int `json:"by_status"`
	ByKind             map[RequestKind]int     `json:"by_kind"`
	TopCategories      []CategoryRanking       `json:"top_categories"`
	OldestOpen         *time.Time              `json:"oldest_open,omitempty"`
	TimeRangeStartDate time.Time               `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time               `json:"time_range_end_date"`
}

// CategoryRanking represents a category ranked by number of requests
type CategoryRanking struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
