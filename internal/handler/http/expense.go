package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyClaims(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type expenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &expenseHandlerImpl{
		expenseService: expenseService,
	}
}

// Apply implements ExpenseHandler.
func (h *expenseHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req expense.ApplyExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.expenseService.Apply(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense claim submitted", result)
}

// MyClaims implements ExpenseHandler.
func (h *expenseHandlerImpl) MyClaims(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r)
	filter := expense.MyClaimFilter{
		Status: q.String("status"),
		Year:   q.IntPtr("year"),
		Params: q.Page(),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.ListMine(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAll implements ExpenseHandler.
func (h *expenseHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := expense.ClaimFilter{
		EmployeeID:  q.String("employee_id"),
		Status:      q.String("status"),
		ExpenseType: q.String("expense_type"),
		StartDate:   q.String("start_date"),
		EndDate:     q.String("end_date"),
		Params:      q.Page(),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.expenseService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements ExpenseHandler.
func (h *expenseHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Expense claim ID is required", nil)
		return
	}

	var req expense.DecideExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.expenseService.Decide(r.Context(), p.EmployeeID, claimID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense claim "+req.Status, result)
}
