package notice

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

var (
	hr       = auth.Principal{EmployeeID: "HR001", Role: user.RoleHR, Department: "People"}
	engineer = auth.Principal{EmployeeID: "EMP001", Role: user.RoleEmployee, Department: "Engineering"}
	sales    = auth.Principal{EmployeeID: "EMP002", Role: user.RoleEmployee, Department: "Sales"}
)

func newTestService() (notice.NoticeService, *timeutil.FixedClock) {
	clock := timeutil.NewFixedClock(time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC))
	return NewNoticeService(memory.NewNoticeRepository(), clock, slog.New(slog.NewTextHandler(io.Discard, nil))), clock
}

func strPtr(s string) *string { return &s }

func TestCreate_RequiresPublisher(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), engineer, notice.CreateNoticeRequest{Title: "Hi", Content: "there"})
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	resp, err := svc.Create(context.Background(), hr, notice.CreateNoticeRequest{Title: "Hi", Content: "there"})
	require.NoError(t, err)
	assert.Equal(t, "Medium", resp.Priority)
	assert.Equal(t, "General", resp.Category)
	assert.Equal(t, "all", resp.TargetAudience)
	assert.Equal(t, "HR001", resp.CreatedBy)

	_, err = svc.Create(context.Background(), hr, notice.CreateNoticeRequest{Title: "Dept", Content: "x", TargetAudience: "department"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAudienceAndReadState(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService()

	general, err := svc.Create(ctx, hr, notice.CreateNoticeRequest{Title: "All hands", Content: "Friday"})
	require.NoError(t, err)

	clock.Set(clock.Now().Add(time.Minute))
	eng, err := svc.Create(ctx, hr, notice.CreateNoticeRequest{
		Title:            "Deploy freeze",
		Content:          "No deploys",
		Priority:         "High",
		TargetAudience:   "department",
		TargetDepartment: strPtr("Engineering"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, hr, notice.CreateNoticeRequest{
		Title:      "Old",
		Content:    "expired",
		ExpiryDate: strPtr("2024-03-04T09:30:00Z"),
	})
	require.NoError(t, err)
	clock.Set(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))

	list, err := svc.List(ctx, engineer, notice.NoticeFilter{})
	require.NoError(t, err)
	require.Len(t, list.Notices, 2)
	assert.Equal(t, eng.ID, list.Notices[0].ID)
	assert.Equal(t, 2, list.UnreadCount)

	list, err = svc.List(ctx, sales, notice.NoticeFilter{})
	require.NoError(t, err)
	require.Len(t, list.Notices, 1)
	assert.Equal(t, general.ID, list.Notices[0].ID)

	_, err = svc.Get(ctx, sales, eng.ID)
	assert.ErrorIs(t, err, notice.ErrNotInAudience)

	require.NoError(t, svc.MarkRead(ctx, engineer, eng.ID))
	require.NoError(t, svc.MarkRead(ctx, engineer, eng.ID))

	got, err := svc.Get(ctx, engineer, eng.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
	assert.Equal(t, 1, got.ReadCount)

	list, err = svc.List(ctx, engineer, notice.NoticeFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, list.Notices, 1)
	assert.Equal(t, general.ID, list.Notices[0].ID)
	assert.Equal(t, 1, list.UnreadCount)

	high := "High"
	list, err = svc.List(ctx, hr, notice.NoticeFilter{Priority: &high})
	require.NoError(t, err)
	assert.Len(t, list.Notices, 1, "administrative roles see department notices")

	assert.ErrorIs(t, svc.MarkRead(ctx, engineer, "missing"), notice.ErrNoticeNotFound)
}
