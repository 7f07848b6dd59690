package notice

import (
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateNoticeRequest struct {
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Priority         string  `json:"priority"`
	Category         string  `json:"category"`
	TargetAudience   string  `json:"target_audience"`
	TargetDepartment *string `json:"target_department,omitempty"`
	TargetRole       *string `json:"target_role,omitempty"`
	ExpiryDate       *string `json:"expiry_date,omitempty"` // RFC3339
}

func (r *CreateNoticeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	} else if validator.ExceedsLength(r.Title, 200) {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Content) {
		errs.Add("content", "content is required")
	}

	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	} else if !validator.IsInSlice(r.Priority, PriorityValues) {
		errs.Add("priority", "priority must be one of: "+strings.Join(PriorityValues, ", "))
	}
	if r.Category == "" {
		r.Category = string(CategoryGeneral)
	} else if !validator.IsInSlice(r.Category, CategoryValues) {
		errs.Add("category", "category must be one of: "+strings.Join(CategoryValues, ", "))
	}

	switch Audience(r.TargetAudience) {
	case "":
		r.TargetAudience = string(AudienceAll)
	case AudienceAll:
	case AudienceDepartment:
		if r.TargetDepartment == nil || validator.IsEmpty(*r.TargetDepartment) {
			errs.Add("target_department", "target_department is required when target_audience is department")
		}
	case AudienceRole:
		if r.TargetRole == nil || !user.Role(*r.TargetRole).IsValid() {
			errs.Add("target_role", "target_role must be one of: admin, hr, manager, employee")
		}
	default:
		errs.Add("target_audience", "target_audience must be one of: "+strings.Join(AudienceValues, ", "))
	}

	if r.ExpiryDate != nil {
		if _, ok := validator.IsValidDateTime(*r.ExpiryDate); !ok {
			errs.Add("expiry_date", "expiry_date must be an RFC3339 timestamp")
		}
	}

	return errs.Err()
}

type NoticeFilter struct {
	Priority   *string `json:"priority,omitempty"`
	Category   *string `json:"category,omitempty"`
	UnreadOnly bool    `json:"unread_only"`
	pagination.Params
}

func (f *NoticeFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 10)

	if f.Priority != nil && !validator.IsInSlice(*f.Priority, PriorityValues) {
		errs.Add("priority", "priority must be one of: "+strings.Join(PriorityValues, ", "))
	}
	if f.Category != nil && !validator.IsInSlice(*f.Category, CategoryValues) {
		errs.Add("category", "category must be one of: "+strings.Join(CategoryValues, ", "))
	}

	return errs.Err()
}

type NoticeResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Priority         string  `json:"priority"`
	Category         string  `json:"category"`
	TargetAudience   string  `json:"target_audience"`
	TargetDepartment *string `json:"target_department,omitempty"`
	TargetRole       *string `json:"target_role,omitempty"`
	CreatedBy        string  `json:"created_by"`
	IsRead           bool    `json:"is_read"`
	ReadCount        int     `json:"read_count"`
	ExpiryDate       *string `json:"expiry_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type ListNoticeResponse struct {
	pagination.Meta
	Notices     []NoticeResponse `json:"notices"`
	UnreadCount int              `json:"unread_count"`
}
