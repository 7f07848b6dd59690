package notice

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var PriorityValues = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}

type Category string

const (
	CategoryGeneral      Category = "General"
	CategoryAnnouncement Category = "Announcement"
	CategoryPolicy       Category = "Policy"
	CategoryEvent        Category = "Event"
	CategoryUrgent       Category = "Urgent"
)

var CategoryValues = []string{
	string(CategoryGeneral),
	string(CategoryAnnouncement),
	string(CategoryPolicy),
	string(CategoryEvent),
	string(CategoryUrgent),
}

type Audience string

const (
	AudienceAll        Audience = "all"
	AudienceDepartment Audience = "department"
	AudienceRole       Audience = "role"
)

var AudienceValues = []string{string(AudienceAll), string(AudienceDepartment), string(AudienceRole)}

type Notice struct {
	ID               string
	Title            string
	Content          string
	Priority         Priority
	Category         Category
	TargetAudience   Audience
	TargetDepartment *string
	TargetRole       *string
	CreatedBy        string
	ReadBy           map[string]time.Time
	IsActive         bool
	ExpiryDate       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// VisibleTo reports whether p is in the notice's audience and the notice is
// still live at now.
func (n Notice) VisibleTo(p auth.Principal, now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if n.ExpiryDate != nil && n.ExpiryDate.Before(now) {
		return false
	}

	switch n.TargetAudience {
	case AudienceAll:
		return true
	case AudienceDepartment:
		return n.TargetDepartment != nil && p.Department != "" && *n.TargetDepartment == p.Department
	case AudienceRole:
		return n.TargetRole != nil && *n.TargetRole == string(p.Role)
	}
	return false
}

// IsReadBy reports whether employeeID has marked the notice read.
func (n Notice) IsReadBy(employeeID string) bool {
	_, ok := n.ReadBy[employeeID]
	return ok
}
