package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/samadhi-app/record-service/internal/domain"
	apperrors "github.com/samadhi-app/record-service/pkg/util/errorutil"
)

type fakeRecordRepo struct {
	mu         sync.Mutex
	nextID     int64
	records    map[int64]domain.Record
	lastLimit  int
	lastOffset int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{nextID: 1, records: make(map[int64]domain.Record)}
}

func (f *fakeRecordRepo) Create(_ context.Context, record *domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.ID = f.nextID
	f.nextID++
	record.CreatedAt = time.Now()
	for i := range record.TimeLines {
		record.TimeLines[i].RecordID = record.ID
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id int64) (*domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := record
	return &copied, nil
}

func (f *fakeRecordRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	f.lastOffset = offset

	var result []domain.Record
	for _, record := range f.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, record := range f.records {
		if record.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newTestRecordService(t *testing.T) (*RecordService, *fakeRecordRepo, *fakeUserRepo) {
	t.Helper()
	records := newFakeRecordRepo()
	users := newFakeUserRepo()
	for _, id := range []string{"alice", "bob"} {
		require.NoError(t, users.Create(context.Background(), &domain.User{ID: id, Role: domain.RoleUser}))
	}
	return NewRecordService(records, users, nil, zap.NewNop()), records, users
}

func sampleInput() RecordCreateInput {
	return RecordCreateInput{
		YoutubeURL:  "https://youtu.be/dQw4w9WgXcQ",
		DurationSec: 600,
		Score:       87.5,
		TimeLines: []TimeLineInput{
			{YoutubeStartSec: 0, YoutubeEndSec: 60, Pose: "Downward Dog", Score: 95, ImageURL: "http://files.local/1.png"},
			{YoutubeStartSec: 60, YoutubeEndSec: 120, Pose: "Warrior II", Score: 80, ImageURL: "http://files.local/2.png"},
		},
	}
}

func TestSaveRecord(t *testing.T) {
	svc, _, _ := newTestRecordService(t)

	record, err := svc.Save(context.Background(), "alice", sampleInput())
	require.NoError(t, err)
	assert.NotZero(t, record.ID)
	assert.Equal(t, "alice", record.UserID)
	require.Len(t, record.TimeLines, 2)
	assert.Equal(t, record.ID, record.TimeLines[0].RecordID)
}

func TestSaveRecordUnknownUser(t *testing.T) {
	svc, _, _ := newTestRecordService(t)

	_, err := svc.Save(context.Background(), "ghost", sampleInput())
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestFindByIDOwnership(t *testing.T) {
	svc, _, _ := newTestRecordService(t)

	saved, err := svc.Save(context.Background(), "alice", sampleInput())
	require.NoError(t, err)

	// owner reads her own record
	got, err := svc.FindByID(context.Background(), "alice", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	// another authenticated user is rejected
	_, err = svc.FindByID(context.Background(), "bob", saved.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
}

func TestFindByIDMissing(t *testing.T) {
	svc, _, _ := newTestRecordService(t)

	_, err := svc.FindByID(context.Background(), "alice", 42)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestListByUserDefaults(t *testing.T) {
	svc, records, _ := newTestRecordService(t)

	_, err := svc.ListByUser(context.Background(), "alice", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, records.lastLimit)
	assert.Equal(t, 0, records.lastOffset)

	_, err = svc.ListByUser(context.Background(), "alice", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, records.lastLimit)
	assert.Equal(t, 10, records.lastOffset)
}
