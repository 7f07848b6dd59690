package leave

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
)

type LeaveType string

const (
	LeaveTypeSick         LeaveType = "sick-leave"
	LeaveTypeCasual       LeaveType = "casual-leave"
	LeaveTypeAnnual       LeaveType = "annual-leave"
	LeaveTypeMaternity    LeaveType = "maternity-leave"
	LeaveTypePaternity    LeaveType = "paternity-leave"
	LeaveTypeEmergency    LeaveType = "emergency-leave"
	LeaveTypeUnpaid       LeaveType = "unpaid-leave"
	LeaveTypeCompensatory LeaveType = "compensatory-leave"
)

var LeaveTypeValues = []string{
	string(LeaveTypeSick),
	string(LeaveTypeCasual),
	string(LeaveTypeAnnual),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
	string(LeaveTypeEmergency),
	string(LeaveTypeUnpaid),
	string(LeaveTypeCompensatory),
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

var LeaveRequestStatusValues = []string{
	string(LeaveRequestStatusPending),
	string(LeaveRequestStatusApproved),
	string(LeaveRequestStatusRejected),
	string(LeaveRequestStatusCancelled),
}

type HalfDayPeriod string

const (
	HalfDayFirst  HalfDayPeriod = "first-half"
	HalfDaySecond HalfDayPeriod = "second-half"
)

var HalfDayPeriodValues = []string{string(HalfDayFirst), string(HalfDaySecond)}

type EmergencyContact struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Relationship string `json:"relationship"`
}

type Handover struct {
	HandoverTo   string `json:"handover_to"`
	Tasks        string `json:"tasks"`
	Instructions string `json:"instructions"`
}

type LeaveRequest struct {
	ID               string
	EmployeeID       string
	LeaveType        LeaveType
	StartDate        time.Time
	EndDate          time.Time
	TotalDays        float64
	Reason           string
	Status           LeaveRequestStatus
	IsHalfDay        bool
	HalfDayPeriod    *HalfDayPeriod
	EmergencyContact *EmergencyContact
	Handover         *Handover

	AppliedAt       time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalDays is 0.5 for a half-day request, otherwise the inclusive day count.
func TotalDays(start, end time.Time, isHalfDay bool) float64 {
	if isHalfDay {
		return 0.5
	}
	return float64(timeutil.DaysInclusive(start, end))
}

// Blocking reports whether r reserves its dates against new requests.
func (r LeaveRequest) Blocking() bool {
	return r.Status == LeaveRequestStatusPending || r.Status == LeaveRequestStatusApproved
}

// Overlaps is the inclusive interval intersection test.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Cancel withdraws a pending request on behalf of its owner. A request owned
// by someone else is reported as not found.
func (r *LeaveRequest) Cancel(employeeID string) error {
	if r.EmployeeID != employeeID {
		return ErrLeaveRequestNotFound
	}
	if r.Status != LeaveRequestStatusPending {
		return ErrInvalidState
	}
	r.Status = LeaveRequestStatusCancelled
	return nil
}

// Decide applies an approver's decision to a pending request.
func (r *LeaveRequest) Decide(decision LeaveRequestStatus, approverID string, reason *string, at time.Time) error {
	if decision != LeaveRequestStatusApproved && decision != LeaveRequestStatusRejected {
		return ErrInvalidDecision
	}
	if r.Status != LeaveRequestStatusPending {
		return ErrInvalidState
	}

	r.Status = decision
	r.ApprovedBy = &approverID
	r.ApprovedAt = &at
	if decision == LeaveRequestStatusRejected {
		r.RejectionReason = reason
	}
	return nil
}

// Entitlements maps a leave type to its yearly allowance in days.
type Entitlements map[LeaveType]float64

// DefaultEntitlements is used when no policy file overrides it.
func DefaultEntitlements() Entitlements {
	return Entitlements{
		LeaveTypeAnnual:    21,
		LeaveTypeSick:      10,
		LeaveTypeCasual:    12,
		LeaveTypeEmergency: 5,
	}
}

// Balance is the signed remaining allowance for one leave type.
type Balance struct {
	LeaveType   LeaveType
	Entitlement float64
	Used        float64
	Remaining   float64
}

// ComputeBalances returns one balance per entitled type, in LeaveTypeValues
// order. Only approved requests starting within year count as used.
// Remaining is not clamped and goes negative when a type is over-allocated.
func ComputeBalances(entitlements Entitlements, requests []LeaveRequest, year int) []Balance {
	used := make(map[LeaveType]float64)
	for _, r := range requests {
		if r.Status != LeaveRequestStatusApproved || r.StartDate.Year() != year {
			continue
		}
		used[r.LeaveType] += r.TotalDays
	}

	balances := make([]Balance, 0, len(entitlements))
	for _, v := range LeaveTypeValues {
		lt := LeaveType(v)
		entitlement, ok := entitlements[lt]
		if !ok {
			continue
		}
		balances = append(balances, Balance{
			LeaveType:   lt,
			Entitlement: entitlement,
			Used:        used[lt],
			Remaining:   entitlement - used[lt],
		})
	}
	return balances
}
