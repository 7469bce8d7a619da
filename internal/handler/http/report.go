package http

import (
	"net/http"

	"github.com/Syntax-Move/attendance-system-backend/internal/domain/report"
	"github.com/Syntax-Move/attendance-system-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MonthlySalary(w http.ResponseWriter, r *http.Request)
	ExportMonthlySalary(w http.ResponseWriter, r *http.Request)
	EmployeeSalary(w http.ResponseWriter, r *http.Request)
	EmployeeSalarySlip(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MonthlySalary implements ReportHandler.
func (h *reportHandlerImpl) MonthlySalary(w http.ResponseWriter, r *http.Request) {
	req, ok := periodRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlySalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ExportMonthlySalary implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthlySalary(w http.ResponseWriter, r *http.Request) {
	req, ok := periodRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.ExportMonthlySalaryXLSX(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, result.FileName, result.ContentType, result.Content)
}

// EmployeeSalary implements ReportHandler.
func (h *reportHandlerImpl) EmployeeSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(w, id) {
		return
	}
	req, ok := periodRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.EmployeeSalary(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// EmployeeSalarySlip implements ReportHandler.
func (h *reportHandlerImpl) EmployeeSalarySlip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validID(w, id) {
		return
	}
	req, ok := periodRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.EmployeeSalarySlipPDF(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, result.FileName, result.ContentType, result.Content)
}

// periodRequest reads the required ?month=&year= pair. Range checks are
// left to the service.
func periodRequest(w http.ResponseWriter, r *http.Request) (report.PeriodRequest, bool) {
	year, month, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return report.PeriodRequest{}, false
	}

	var req report.PeriodRequest
	if year != nil {
		req.Year = *year
	}
	if month != nil {
		req.Month = *month
	}
	return req, true
}
