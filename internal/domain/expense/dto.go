package expense

import (
	"regexp"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

type ApplyExpenseRequest struct {
	ExpenseType string   `json:"expense_type"`
	Amount      *float64 `json:"amount"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	ClaimDate   string   `json:"claim_date"` // YYYY-MM-DD, defaults to today
	ReceiptURL  *string  `json:"receipt_url,omitempty"`
}

func (r *ApplyExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.ExpenseType, ExpenseTypeValues) {
		errs.Add("expense_type", "expense_type must be one of: "+strings.Join(ExpenseTypeValues, ", "))
	}

	if r.Amount == nil {
		errs.Add("amount", "amount is required")
	} else if *r.Amount < 0 {
		errs.Add("amount", "amount must not be negative")
	}

	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	} else if !currencyRegex.MatchString(r.Currency) {
		errs.Add("currency", "currency must be a 3-letter ISO 4217 code")
	}

	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	} else if validator.ExceedsLength(r.Description, 1000) {
		errs.Add("description", "description must not exceed 1000 characters")
	}

	if r.ClaimDate != "" {
		if _, ok := validator.IsValidDate(r.ClaimDate); !ok {
			errs.Add("claim_date", "claim_date must be in YYYY-MM-DD format")
		}
	}

	if r.ReceiptURL != nil && validator.ExceedsLength(*r.ReceiptURL, 2048) {
		errs.Add("receipt_url", "receipt_url must not exceed 2048 characters")
	}

	return errs.Err()
}

type DecideExpenseRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *DecideExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(ClaimStatusApproved) && r.Status != string(ClaimStatusRejected) {
		errs.Add("status", "status must be approved or rejected")
	}
	if r.RejectionReason != nil && validator.ExceedsLength(*r.RejectionReason, 500) {
		errs.Add("rejection_reason", "rejection_reason must not exceed 500 characters")
	}

	return errs.Err()
}

type MyClaimFilter struct {
	Status *string `json:"status,omitempty"`
	Year   *int    `json:"year,omitempty"`
	pagination.Params
}

func (f *MyClaimFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 20)

	if f.Status != nil && !validator.IsInSlice(*f.Status, ClaimStatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(ClaimStatusValues, ", "))
	}
	if f.Year != nil && (*f.Year < 2000 || *f.Year > 2100) {
		errs.Add("year", "year must be between 2000 and 2100")
	}

	return errs.Err()
}

// ClaimFilter is the administrative listing across employees.
type ClaimFilter struct {
	EmployeeID  *string `json:"employee_id,omitempty"`
	Status      *string `json:"status,omitempty"`
	ExpenseType *string `json:"expense_type,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	pagination.Params
}

func (f *ClaimFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Normalize(&errs, 20)

	if f.Status != nil && !validator.IsInSlice(*f.Status, ClaimStatusValues) {
		errs.Add("status", "status must be one of: "+strings.Join(ClaimStatusValues, ", "))
	}
	if f.ExpenseType != nil && !validator.IsInSlice(*f.ExpenseType, ExpenseTypeValues) {
		errs.Add("expense_type", "expense_type must be one of: "+strings.Join(ExpenseTypeValues, ", "))
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ClaimResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	ClaimDate       string  `json:"claim_date"`
	ExpenseType     string  `json:"expense_type"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
	ReceiptURL      *string `json:"receipt_url,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ListClaimResponse struct {
	pagination.Meta
	Claims      []ClaimResponse    `json:"claims"`
	TotalAmount map[string]float64 `json:"total_amount"`
}
