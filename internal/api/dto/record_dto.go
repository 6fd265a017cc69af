package dto

import (
	"time"

	"github.com/samadhi-app/record-service/internal/domain"
)

// TimeLineRequest is one scored segment in a record submission.
type TimeLineRequest struct {
	YoutubeStartSec int     `json:"youtube_start_sec"`
	YoutubeEndSec   int     `json:"youtube_end_sec"`
	Pose            string  `json:"pose"`
	Score           float32 `json:"score"`
	Image           string  `json:"image"`
}

// RecordCreateRequest payload for a new session report.
type RecordCreateRequest struct {
	YoutubeURL  string            `json:"youtube_url"`
	DurationSec int               `json:"duration_sec"`
	Score       float32           `json:"score"`
	TimeLines   []TimeLineRequest `json:"timelines"`
}

// TimeLineResponse mirrors TimeLineRequest on the way out.
type TimeLineResponse struct {
	YoutubeStartSec int     `json:"youtube_start_sec"`
	YoutubeEndSec   int     `json:"youtube_end_sec"`
	Pose            string  `json:"pose"`
	Score           float32 `json:"score"`
	Image           string  `json:"image"`
}

// RecordResponse is the serialized session report.
type RecordResponse struct {
	ID          int64              `json:"id"`
	UserID      string             `json:"user_id"`
	YoutubeURL  string             `json:"youtube_url"`
	DurationSec int                `json:"duration_sec"`
	Score       float32            `json:"score"`
	CreatedAt   time.Time          `json:"created_at"`
	TimeLines   []TimeLineResponse `json:"timelines"`
}

// RecordFrom maps a domain record to its response shape.
func RecordFrom(record *domain.Record) RecordResponse {
	timeLines := make([]TimeLineResponse, 0, len(record.TimeLines))
	for _, tl := range record.TimeLines {
		timeLines = append(timeLines, TimeLineResponse{
			YoutubeStartSec: tl.YoutubeStartSec,
			YoutubeEndSec:   tl.YoutubeEndSec,
			Pose:            tl.Pose,
			Score:           tl.Score,
			Image:           tl.ImageURL,
		})
	}
	return RecordResponse{
		ID:          record.ID,
		UserID:      record.UserID,
		YoutubeURL:  record.YoutubeURL,
		DurationSec: record.DurationSec,
		Score:       record.Score,
		CreatedAt:   record.CreatedAt,
		TimeLines:   timeLines,
	}
}
