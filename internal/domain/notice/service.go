package notice

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type NoticeService interface {
	Create(ctx context.Context, author auth.Principal, req CreateNoticeRequest) (NoticeResponse, error)
	List(ctx context.Context, p auth.Principal, filter NoticeFilter) (ListNoticeResponse, error)
	Get(ctx context.Context, p auth.Principal, id string) (NoticeResponse, error)
	MarkRead(ctx context.Context, p auth.Principal, id string) error
}
