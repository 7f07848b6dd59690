package notice

import (
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

var (
	ErrNoticeNotFound = apperror.New(apperror.ErrNotFound, "notice not found")
	ErrNotInAudience  = errors.New("notice is not addressed to you")
)
