package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gameplan-service/internal/config"
	"gameplan-service/internal/mocks"
)

func TestRetentionRunUsesCutoff(t *testing.T) {
	repo := new(mocks.AnnouncementRepositoryMock)
	r := NewRetention(repo, 90)
	now := time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	repo.On("DeleteOlderThan", mock.Anything, now.Add(-90*24*time.Hour)).Return(int64(4), nil).Once()

	n, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	repo.AssertExpectations(t)
}

func TestRetentionDisabledWithZeroDays(t *testing.T) {
	repo := new(mocks.AnnouncementRepositoryMock)

	n, err := NewRetention(repo, 0).Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	repo.AssertNotCalled(t, "DeleteOlderThan", mock.Anything, mock.Anything)
}

func TestRetentionRunWrapsError(t *testing.T) {
	repo := new(mocks.AnnouncementRepositoryMock)
	repo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := NewRetention(repo, 30).Run(context.Background())

	require.ErrorIs(t, err, assert.AnError)
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	c := cron.New()
	_, err := NewRetention(new(mocks.AnnouncementRepositoryMock), 30).Schedule(c, "every tuesday")
	assert.Error(t, err)

	_, err = Start(config.RetentionConfig{Schedule: "nope", AnnouncementDays: 30}, new(mocks.AnnouncementRepositoryMock))
	assert.Error(t, err)
}

func TestStartSchedulesJob(t *testing.T) {
	c, err := Start(config.RetentionConfig{Schedule: "@daily", AnnouncementDays: 30}, new(mocks.AnnouncementRepositoryMock))
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}
