package http

import (
	"net/http"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/leave"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/middleware"
	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Employee
	Request(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)

	// Admin
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	EmployeeBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Request implements LeaveHandler.
func (h *leaveHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, user.ErrEmployeeRoleRequired)
		return
	}

	var req leave.RequestLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := h.leaveService.RequestLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, result.Message, result)
}

// MyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, user.ErrEmployeeRoleRequired)
		return
	}

	year, month, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.GetMyRequests(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// MyBalance implements LeaveHandler.
func (h *leaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r)
	if !ok {
		response.HandleError(w, user.ErrEmployeeRoleRequired)
		return
	}
	h.balance(w, r, employeeID)
}

// EmployeeBalance implements LeaveHandler.
func (h *leaveHandlerImpl) EmployeeBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(w, id) {
		return
	}
	h.balance(w, r, id)
}

func (h *leaveHandlerImpl) balance(w http.ResponseWriter, r *http.Request, employeeID string) {
	year, month, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.GetBalance(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := leave.ListLeaveRequestsRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Status:     r.URL.Query().Get("status"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.List(r.Context(), req.Filter())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(w, id) {
		return
	}

	result, err := h.leaveService.ApproveLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(w, id) {
		return
	}

	result, err := h.leaveService.RejectLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// periodQuery reads the optional ?year=&month= pair.
func periodQuery(r *http.Request) (year *int, month *int, err error) {
	if year, err = queryInt(r, "year"); err != nil {
		return nil, nil, err
	}
	if month, err = queryInt(r, "month"); err != nil {
		return nil, nil, err
	}
	return year, month, nil
}
