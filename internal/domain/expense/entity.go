package expense

import "time"

type ExpenseType string

const (
	ExpenseTypeTravel         ExpenseType = "travel"
	ExpenseTypeFood           ExpenseType = "food"
	ExpenseTypeAccommodation  ExpenseType = "accommodation"
	ExpenseTypeOfficeSupplies ExpenseType = "office-supplies"
	ExpenseTypeSoftware       ExpenseType = "software"
	ExpenseTypeTransportation ExpenseType = "transportation"
	ExpenseTypeTraining       ExpenseType = "training"
	ExpenseTypeOther          ExpenseType = "other"
)

var ExpenseTypeValues = []string{
	string(ExpenseTypeTravel),
	string(ExpenseTypeFood),
	string(ExpenseTypeAccommodation),
	string(ExpenseTypeOfficeSupplies),
	string(ExpenseTypeSoftware),
	string(ExpenseTypeTransportation),
	string(ExpenseTypeTraining),
	string(ExpenseTypeOther),
}

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

var ClaimStatusValues = []string{
	string(ClaimStatusPending),
	string(ClaimStatusApproved),
	string(ClaimStatusRejected),
}

// DefaultCurrency applies when a claim does not name one.
const DefaultCurrency = "USD"

type Claim struct {
	ID          string
	EmployeeID  string
	ClaimDate   time.Time
	ExpenseType ExpenseType
	Amount      float64
	Currency    string
	Description string
	ReceiptRef  *string
	Status      ClaimStatus

	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Decide applies an approver's decision to a pending claim.
func (c *Claim) Decide(decision ClaimStatus, approverID string, reason *string, at time.Time) error {
	if decision != ClaimStatusApproved && decision != ClaimStatusRejected {
		return ErrInvalidDecision
	}
	if c.Status != ClaimStatusPending {
		return ErrInvalidState
	}

	c.Status = decision
	c.ApprovedBy = &approverID
	c.ApprovedAt = &at
	if decision == ClaimStatusRejected {
		c.RejectionReason = reason
	}
	return nil
}
