package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

func TestClaim_Decide(t *testing.T) {
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

	c := Claim{Status: ClaimStatusPending}
	require.NoError(t, c.Decide(ClaimStatusApproved, "HR001", nil, now))
	assert.Equal(t, ClaimStatusApproved, c.Status)
	assert.Equal(t, "HR001", *c.ApprovedBy)

	err := c.Decide(ClaimStatusRejected, "HR001", nil, now)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, apperror.ErrStateConflict)

	reason := "missing receipt"
	r := Claim{Status: ClaimStatusPending}
	require.NoError(t, r.Decide(ClaimStatusRejected, "HR001", &reason, now))
	assert.Equal(t, reason, *r.RejectionReason)

	p := Claim{Status: ClaimStatusPending}
	assert.ErrorIs(t, p.Decide(ClaimStatusPending, "HR001", nil, now), ErrInvalidDecision)
}

func TestApplyExpenseRequest_Validate(t *testing.T) {
	amount := 42.5
	negative := -1.0

	ok := ApplyExpenseRequest{ExpenseType: "food", Amount: &amount, Description: "team lunch"}
	require.NoError(t, ok.Validate())
	assert.Equal(t, DefaultCurrency, ok.Currency)

	lower := ApplyExpenseRequest{ExpenseType: "travel", Amount: &amount, Currency: "idr", Description: "train"}
	require.NoError(t, lower.Validate())
	assert.Equal(t, "IDR", lower.Currency)

	cases := []ApplyExpenseRequest{
		{ExpenseType: "food", Description: "no amount"},
		{ExpenseType: "food", Amount: &negative, Description: "negative"},
		{ExpenseType: "food", Amount: &amount, Description: "   "},
		{ExpenseType: "gifts", Amount: &amount, Description: "unknown type"},
		{ExpenseType: "food", Amount: &amount, Currency: "DOLLARS", Description: "bad currency"},
	}
	for _, c := range cases {
		err := c.Validate()
		assert.ErrorIs(t, err, apperror.ErrValidation, c.Description)
	}

	zero := 0.0
	free := ApplyExpenseRequest{ExpenseType: "other", Amount: &zero, Description: "free sample"}
	assert.NoError(t, free.Validate())
}
