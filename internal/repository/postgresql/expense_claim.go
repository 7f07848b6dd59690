package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type claimRepository struct {
	db *database.DB
}

const claimColumns = `
	id, employee_id, claim_date, expense_type, amount, currency, description, receipt_ref,
	status, approved_by, approved_at, rejection_reason, version, created_at, updated_at`

func scanClaim(row pgx.Row) (expense.Claim, error) {
	var c expense.Claim
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.ClaimDate, &c.ExpenseType, &c.Amount, &c.Currency, &c.Description, &c.ReceiptRef,
		&c.Status, &c.ApprovedBy, &c.ApprovedAt, &c.RejectionReason, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements expense.ClaimRepository.
func (r *claimRepository) Create(ctx context.Context, c expense.Claim) (expense.Claim, error) {
	q := GetQuerier(ctx, r.db)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO expense_claims (
			id, employee_id, claim_date, expense_type, amount, currency, description, receipt_ref, status, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, 1
		) RETURNING ` + claimColumns

	created, err := scanClaim(q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.ClaimDate, c.ExpenseType, c.Amount, c.Currency, c.Description, c.ReceiptRef, c.Status,
	))
	if err != nil {
		return expense.Claim{}, fmt.Errorf("failed to create expense claim: %w", err)
	}
	return created, nil
}

func (r *claimRepository) get(ctx context.Context, id string, forUpdate bool) (expense.Claim, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + claimColumns + ` FROM expense_claims WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	c, err := scanClaim(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Claim{}, expense.ErrClaimNotFound
		}
		return expense.Claim{}, fmt.Errorf("failed to get expense claim: %w", err)
	}
	return c, nil
}

// GetByID implements expense.ClaimRepository.
func (r *claimRepository) GetByID(ctx context.Context, id string) (expense.Claim, error) {
	return r.get(ctx, id, false)
}

// Update implements expense.ClaimRepository.
func (r *claimRepository) Update(ctx context.Context, id string, fn func(*expense.Claim) error) (expense.Claim, error) {
	var updated expense.Claim
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := r.get(ctx, id, true)
		if err != nil {
			return err
		}
		if err := fn(&current); err != nil {
			return err
		}

		query := `
			UPDATE expense_claims SET
				status = $1, approved_by = $2, approved_at = $3, rejection_reason = $4,
				version = version + 1, updated_at = NOW()
			WHERE id = $5 AND version = $6
			RETURNING ` + claimColumns

		updated, err = scanClaim(tx.QueryRow(ctx, query,
			current.Status, current.ApprovedBy, current.ApprovedAt, current.RejectionReason,
			id, current.Version,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return expense.ErrConcurrentUpdate
			}
			return fmt.Errorf("failed to update expense claim: %w", err)
		}
		return nil
	})
	return updated, err
}

// List implements expense.ClaimRepository.
func (r *claimRepository) List(ctx context.Context, filter expense.ListFilter) ([]expense.Claim, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ExpenseType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("expense_type = $%d", argIdx))
		args = append(args, *filter.ExpenseType)
		argIdx++
	}
	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("claim_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("claim_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("EXTRACT(YEAR FROM claim_date) = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}

	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM expense_claims"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expense claims: %w", err)
	}

	query := "SELECT " + claimColumns + " FROM expense_claims" + where + " ORDER BY claim_date DESC, created_at DESC, id ASC"
	query, args = appendPaging(query, args, argIdx, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expense claims: %w", err)
	}
	defer rows.Close()

	claims := []expense.Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expense claims: %w", err)
	}

	return claims, total, nil
}

func NewClaimRepository(db *database.DB) expense.ClaimRepository {
	return &claimRepository{db: db}
}
