package domain

import "time"

// TimeLine is one scored segment of a workout session, aligned to the
// reference video's timestamps.
type TimeLine struct {
	ID              int64
	RecordID        int64
	YoutubeStartSec int
	YoutubeEndSec   int
	Pose            string
	Score           float32
	ImageURL        string
}

// Record is a session report submitted after a workout. Ownership is set at
// creation and never reassigned.
type Record struct {
	ID          int64
	UserID      string
	YoutubeURL  string
	DurationSec int
	Score       float32
	TimeLines   []TimeLine
	CreatedAt   time.Time
}
