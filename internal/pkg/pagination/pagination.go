// Package pagination normalizes page/limit query parameters and describes result windows.
package pagination

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const MaxLimit = 100

// Params is a 1-based page request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize fills defaults and records out-of-range values in errs.
func (p *Params) Normalize(errs *validator.ValidationErrors, defaultLimit int) {
	if p.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxLimit {
		errs.Add("limit", fmt.Sprintf("limit must not exceed %d", MaxLimit))
	}
}

// Offset of the first row on the page.
func (p Params) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Window slices items to the page, for stores that filter in memory.
func Window[T any](items []T, p Params) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && start+p.Limit < end {
		end = start + p.Limit
	}
	return items[start:end]
}

// Meta describes one page of a result set.
type Meta struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	HasNext    bool   `json:"has_next"`
	HasPrev    bool   `json:"has_prev"`
	Showing    string `json:"showing"`
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	showing := fmt.Sprintf("%d-%d of %d", p.Offset()+1, min(int64(p.Page*p.Limit), total), total)
	if total == 0 || int64(p.Offset()) >= total {
		showing = fmt.Sprintf("0 of %d", total)
	}
	return Meta{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
		Showing:    showing,
	}
}
