package notice

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type noticeServiceImpl struct {
	noticeRepo notice.NoticeRepository
	clock      timeutil.Clock
	logger     *slog.Logger
}

func mapNoticeToResponse(n notice.Notice, viewerID string) notice.NoticeResponse {
	resp := notice.NoticeResponse{
		ID:               n.ID,
		Title:            n.Title,
		Content:          n.Content,
		Priority:         string(n.Priority),
		Category:         string(n.Category),
		TargetAudience:   string(n.TargetAudience),
		TargetDepartment: n.TargetDepartment,
		TargetRole:       n.TargetRole,
		CreatedBy:        n.CreatedBy,
		IsRead:           n.IsReadBy(viewerID),
		ReadCount:        len(n.ReadBy),
		CreatedAt:        n.CreatedAt.Format(time.RFC3339),
	}
	if n.ExpiryDate != nil {
		exp := n.ExpiryDate.Format(time.RFC3339)
		resp.ExpiryDate = &exp
	}
	return resp
}

// visible applies the audience rule; administrative roles see every live notice.
func visible(n notice.Notice, p auth.Principal, now time.Time) bool {
	if p.Role.IsAdministrative() {
		return n.IsActive && (n.ExpiryDate == nil || !n.ExpiryDate.Before(now))
	}
	return n.VisibleTo(p, now)
}

// Create implements notice.NoticeService.
func (s *noticeServiceImpl) Create(ctx context.Context, author auth.Principal, req notice.CreateNoticeRequest) (notice.NoticeResponse, error) {
	if !author.Can(user.PermissionNoticePublish) {
		return notice.NoticeResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return notice.NoticeResponse{}, err
	}

	n := notice.Notice{
		Title:          req.Title,
		Content:        strings.TrimSpace(req.Content),
		Priority:       notice.Priority(req.Priority),
		Category:       notice.Category(req.Category),
		TargetAudience: notice.Audience(req.TargetAudience),
		CreatedBy:      author.EmployeeID,
		ReadBy:         map[string]time.Time{},
		IsActive:       true,
		CreatedAt:      s.clock.Now(),
	}
	switch n.TargetAudience {
	case notice.AudienceDepartment:
		dept := strings.TrimSpace(*req.TargetDepartment)
		n.TargetDepartment = &dept
	case notice.AudienceRole:
		n.TargetRole = req.TargetRole
	}
	if req.ExpiryDate != nil {
		exp, _ := time.Parse(time.RFC3339, *req.ExpiryDate)
		n.ExpiryDate = &exp
	}

	created, err := s.noticeRepo.Create(ctx, n)
	if err != nil {
		return notice.NoticeResponse{}, apperror.Unavailable("create notice", err)
	}

	s.logger.InfoContext(ctx, "notice published",
		slog.String("notice_id", created.ID),
		slog.String("created_by", author.EmployeeID),
		slog.String("target_audience", string(created.TargetAudience)))

	return mapNoticeToResponse(created, author.EmployeeID), nil
}

// List implements notice.NoticeService. UnreadCount covers every matching
// notice, not only the returned page.
func (s *noticeServiceImpl) List(ctx context.Context, p auth.Principal, filter notice.NoticeFilter) (notice.ListNoticeResponse, error) {
	if err := filter.Validate(); err != nil {
		return notice.ListNoticeResponse{}, err
	}

	now := s.clock.Now()
	active, err := s.noticeRepo.ListActive(ctx, now)
	if err != nil {
		return notice.ListNoticeResponse{}, apperror.Unavailable("list notices", err)
	}

	var matched []notice.Notice
	unread := 0
	for _, n := range active {
		if !visible(n, p, now) {
			continue
		}
		if filter.Priority != nil && string(n.Priority) != *filter.Priority {
			continue
		}
		if filter.Category != nil && string(n.Category) != *filter.Category {
			continue
		}
		isRead := n.IsReadBy(p.EmployeeID)
		if !isRead {
			unread++
		}
		if filter.UnreadOnly && isRead {
			continue
		}
		matched = append(matched, n)
	}

	page := pagination.Window(matched, filter.Params)
	notices := make([]notice.NoticeResponse, 0, len(page))
	for _, n := range page {
		notices = append(notices, mapNoticeToResponse(n, p.EmployeeID))
	}

	return notice.ListNoticeResponse{
		Meta:        pagination.NewMeta(filter.Params, int64(len(matched))),
		Notices:     notices,
		UnreadCount: unread,
	}, nil
}

func (s *noticeServiceImpl) load(ctx context.Context, p auth.Principal, id string) (notice.Notice, error) {
	n, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		if apperror.KindOf(err) != nil {
			return notice.Notice{}, err
		}
		return notice.Notice{}, apperror.Unavailable("get notice", err)
	}

	now := s.clock.Now()
	if !n.IsActive || (n.ExpiryDate != nil && n.ExpiryDate.Before(now)) {
		return notice.Notice{}, notice.ErrNoticeNotFound
	}
	if !visible(n, p, now) {
		return notice.Notice{}, notice.ErrNotInAudience
	}
	return n, nil
}

// Get implements notice.NoticeService.
func (s *noticeServiceImpl) Get(ctx context.Context, p auth.Principal, id string) (notice.NoticeResponse, error) {
	n, err := s.load(ctx, p, id)
	if err != nil {
		return notice.NoticeResponse{}, err
	}
	return mapNoticeToResponse(n, p.EmployeeID), nil
}

// MarkRead implements notice.NoticeService.
func (s *noticeServiceImpl) MarkRead(ctx context.Context, p auth.Principal, id string) error {
	if _, err := s.load(ctx, p, id); err != nil {
		return err
	}
	if err := s.noticeRepo.MarkRead(ctx, id, p.EmployeeID, s.clock.Now()); err != nil {
		if apperror.KindOf(err) != nil {
			return err
		}
		return apperror.Unavailable("mark notice read", err)
	}
	return nil
}

func NewNoticeService(noticeRepo notice.NoticeRepository, clock timeutil.Clock, logger *slog.Logger) notice.NoticeService {
	return &noticeServiceImpl{
		noticeRepo: noticeRepo,
		clock:      clock,
		logger:     logger,
	}
}
