package expense

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

func newTestService() expense.ExpenseService {
	clock := timeutil.NewFixedClock(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
	return NewExpenseService(memory.NewClaimRepository(), clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func amount(v float64) *float64 { return &v }

func TestApply_Defaults(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Apply(context.Background(), "EMP001", expense.ApplyExpenseRequest{
		ExpenseType: "travel",
		Amount:      amount(125.5),
		Description: "Taxi to client",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "2024-03-04", resp.ClaimDate)
	assert.Equal(t, 125.5, resp.Amount)
}

func TestApply_Validation(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name string
		req  expense.ApplyExpenseRequest
	}{
		{"missing amount", expense.ApplyExpenseRequest{ExpenseType: "food", Description: "lunch"}},
		{"negative amount", expense.ApplyExpenseRequest{ExpenseType: "food", Amount: amount(-1), Description: "lunch"}},
		{"empty description", expense.ApplyExpenseRequest{ExpenseType: "food", Amount: amount(10), Description: "  "}},
		{"unknown type", expense.ApplyExpenseRequest{ExpenseType: "yacht", Amount: amount(10), Description: "boat"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Apply(context.Background(), "EMP001", c.req)
			assert.ErrorIs(t, err, apperror.ErrValidation)
		})
	}
}

func TestDecideAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	usd, err := svc.Apply(ctx, "EMP001", expense.ApplyExpenseRequest{ExpenseType: "food", Amount: amount(20), Description: "lunch", ClaimDate: "2024-03-01"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "EMP001", expense.ApplyExpenseRequest{ExpenseType: "travel", Amount: amount(30.25), Description: "train", ClaimDate: "2024-03-02"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "EMP001", expense.ApplyExpenseRequest{ExpenseType: "software", Amount: amount(99), Currency: "eur", Description: "license"})
	require.NoError(t, err)
	_, err = svc.Apply(ctx, "EMP002", expense.ApplyExpenseRequest{ExpenseType: "food", Amount: amount(5), Description: "coffee"})
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, "HR001", usd.ID, expense.DecideExpenseRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", decided.Status)

	_, err = svc.Decide(ctx, "HR001", usd.ID, expense.DecideExpenseRequest{Status: "rejected"})
	assert.ErrorIs(t, err, expense.ErrInvalidState)

	_, err = svc.Decide(ctx, "HR001", "missing", expense.DecideExpenseRequest{Status: "approved"})
	assert.ErrorIs(t, err, expense.ErrClaimNotFound)

	mine, err := svc.ListMine(ctx, "EMP001", expense.MyClaimFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), mine.TotalCount)
	assert.Equal(t, 50.25, mine.TotalAmount["USD"])
	assert.Equal(t, 99.0, mine.TotalAmount["EUR"])
	assert.Equal(t, "2024-03-04", mine.Claims[0].ClaimDate)

	page, err := svc.ListMine(ctx, "EMP001", expense.MyClaimFilter{Params: pagination.Params{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, page.Claims, 1)
	assert.True(t, page.HasPrev)

	approved := "approved"
	all, err := svc.ListAll(ctx, expense.ClaimFilter{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.TotalCount)
	assert.Equal(t, usd.ID, all.Claims[0].ID)
}
