package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notice"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type NoticeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type noticeHandlerImpl struct {
	noticeService notice.NoticeService
}

func NewNoticeHandler(noticeService notice.NoticeService) NoticeHandler {
	return &noticeHandlerImpl{
		noticeService: noticeService,
	}
}

// Create implements NoticeHandler.
func (h *noticeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req notice.CreateNoticeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.noticeService.Create(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Notice published", result)
}

// List implements NoticeHandler.
func (h *noticeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r)
	filter := notice.NoticeFilter{
		Priority:   q.String("priority"),
		Category:   q.String("category"),
		UnreadOnly: q.Bool("unread_only"),
		Params:     q.Page(),
	}
	if err := q.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.noticeService.List(r.Context(), p, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements NoticeHandler.
func (h *noticeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	result, err := h.noticeService.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkRead implements NoticeHandler.
func (h *noticeHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	if err := h.noticeService.MarkRead(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notice marked as read", nil)
}
