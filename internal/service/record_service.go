package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/samadhi-app/record-service/internal/auth"
	"github.com/samadhi-app/record-service/internal/domain"
	"github.com/samadhi-app/record-service/internal/events"
	"github.com/samadhi-app/record-service/internal/repository"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

// DefaultPageSize is used when a listing request does not specify a size.
const DefaultPageSize = 8

// TimeLineInput is one scored segment submitted with a record.
type TimeLineInput struct {
	YoutubeStartSec int
	YoutubeEndSec   int
	Pose            string
	Score           float32
	ImageURL        string
}

// RecordCreateInput carries a new session report.
type RecordCreateInput struct {
	YoutubeURL  string
	DurationSec int
	Score       float32
	TimeLines   []TimeLineInput
}

// RecordService manages session reports and enforces ownership on every read.
type RecordService struct {
	records    repository.RecordRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRecordService builds the service.
func NewRecordService(records repository.RecordRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *RecordService {
	return &RecordService{records: records, users: users, dispatcher: dispatcher, logger: logger}
}

// Save persists a new record owned by the caller.
func (s *RecordService) Save(ctx context.Context, userID string, input RecordCreateInput) (*domain.Record, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFound("user")
	}

	record := &domain.Record{
		UserID:      userID,
		YoutubeURL:  input.YoutubeURL,
		DurationSec: input.DurationSec,
		Score:       input.Score,
		TimeLines:   make([]domain.TimeLine, 0, len(input.TimeLines)),
	}
	for _, tl := range input.TimeLines {
		record.TimeLines = append(record.TimeLines, domain.TimeLine{
			YoutubeStartSec: tl.YoutubeStartSec,
			YoutubeEndSec:   tl.YoutubeEndSec,
			Pose:            tl.Pose,
			Score:           tl.Score,
			ImageURL:        tl.ImageURL,
		})
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRecordCreated,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload: events.RecordCreatedPayload{
				RecordID:    record.ID,
				Score:       record.Score,
				DurationSec: record.DurationSec,
			},
		})
	}
	return record, nil
}

// FindByID returns a record only to its owner.
func (s *RecordService) FindByID(ctx context.Context, callerID string, id int64) (*domain.Record, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("record")
		}
		return nil, err
	}

	if err := auth.AuthorizeOwner(callerID, record.UserID); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByUser returns the caller's records, newest first. Page numbering
// starts at zero; size falls back to DefaultPageSize.
func (s *RecordService) ListByUser(ctx context.Context, userID string, page, size int) ([]domain.Record, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	return s.records.ListByUser(ctx, userID, size, page*size)
}

// CountByUser returns the caller's total record count.
func (s *RecordService) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.records.CountByUser(ctx, userID)
}
