package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Syntax-Move/attendance-system-backend/internal/config"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/employee"
	"github.com/Syntax-Move/attendance-system-backend/internal/domain/user"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/clock"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/export"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/jwt"
	"github.com/Syntax-Move/attendance-system-backend/internal/pkg/qrcode"
	"github.com/Syntax-Move/attendance-system-backend/internal/repository/memory"
	attendanceService "github.com/Syntax-Move/attendance-system-backend/internal/service/attendance"
	authService "github.com/Syntax-Move/attendance-system-backend/internal/service/auth"
	employeeService "github.com/Syntax-Move/attendance-system-backend/internal/service/employee"
	holidayService "github.com/Syntax-Move/attendance-system-backend/internal/service/holiday"
	leaveService "github.com/Syntax-Move/attendance-system-backend/internal/service/leave"
	reportService "github.com/Syntax-Move/attendance-system-backend/internal/service/report"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2025, time.March, 12, 22, 0, 0, 0, time.UTC)

type testServer struct {
	router      *chi.Mux
	store       *memory.Store
	jwt         jwt.Service
	qr          *qrcode.Validator
	employee    employee.EmployeeResponse
	adminToken  string
	memberToken string
}

func handlerTestConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		Timezone:               "UTC",
		StandardCheckInTime:    "12:00",
		LateThresholdMinutes:   15,
		HalfDayLateMinutes:     60,
		MaxWorkingMinutes:      540,
		PaidLeavesPerMonthDays: 2,
		MaxCarryoverLeaveDays:  1,
		MinutesPerWorkDay:      540,
		QRCodeSuffix:           "syntax_move",
		QRCodeValidity:         5 * time.Minute,
	}
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()
	cfg := handlerTestConfig()
	store := memory.NewStore()
	clk := clock.Fixed{T: handlerTestNow}
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	qr := qrcode.NewValidator(cfg.QRCodeSuffix, cfg.QRCodeValidity)

	rules, err := attendanceService.NewRules(cfg)
	require.NoError(t, err)
	ledger := leaveService.NewLedger(store.LeaveBalances(), cfg)

	attendanceSvc := attendanceService.NewAttendanceService(
		store, store.Attendances(), store.Summaries(), store.Deductions(), store.Employees(),
		store.Holidays(), store.LeaveRequests(), ledger, rules, qr, clk,
	)
	employeeSvc := employeeService.NewEmployeeService(store, store.Employees(), store.Users())
	leaveSvc := leaveService.NewLeaveService(
		store, store.LeaveRequests(), store.Attendances(), store.Employees(), ledger, attendanceSvc, cfg.MinutesPerWorkDay, clk,
	)
	holidaySvc := holidayService.NewHolidayService(store, store.Holidays(), store.Attendances(), store.Employees(), store.Deductions(), attendanceSvc)
	reportSvc := reportService.NewReportService(store.Reports(), store.Attendances(), store.Deductions(), store.Employees(), clk)

	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtSvc,
		NewAuthHandler(jwtSvc, authService.NewAuthService(store.Users(), jwtSvc)),
		NewEmployeeHandler(employeeSvc),
		NewAttendanceHandler(attendanceSvc),
		NewLeaveHandler(leaveSvc),
		NewHolidayHandler(holidaySvc),
		NewReportHandler(reportSvc),
	)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)
	admin, err := store.Users().Create(ctx, user.User{
		Email:        "admin@syntaxmove.com",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		IsActive:     true,
	})
	require.NoError(t, err)

	emp, err := employeeSvc.Create(ctx, employee.CreateEmployeeRequest{
		Email:       "sara@syntaxmove.com",
		Password:    "password123",
		FullName:    "Sara Khan",
		Designation: "Engineer",
		DailySalary: decimal.NewFromInt(1000),
		JoiningDate: "2025-03-03",
	})
	require.NoError(t, err)

	adminToken, _, err := jwtSvc.GenerateAccessToken(admin.ID, admin.Email, nil, user.RoleAdmin)
	require.NoError(t, err)
	memberToken, _, err := jwtSvc.GenerateAccessToken(emp.UserID, emp.Email, &emp.ID, user.RoleEmployee)
	require.NoError(t, err)

	return testServer{
		router:      router,
		store:       store,
		jwt:         jwtSvc,
		qr:          qr,
		employee:    emp,
		adminToken:  adminToken,
		memberToken: memberToken,
	}
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "Sara@SyntaxMove.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	var data struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Role       string  `json:"role"`
			EmployeeID *string `json:"employee_id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, "employee", data.User.Role)
	require.NotNil(t, data.User.EmployeeID)
	assert.Equal(t, s.employee.ID, *data.User.EmployeeID)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "sara@syntaxmove.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", "{invalid json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/attendance/today", s.memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", s.memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/attendance/today", s.memberToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Authorization(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/employees", s.memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/attendance/today", s.adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/employees", s.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAttendanceHandler_CheckInAndOut(t *testing.T) {
	s := newTestServer(t)
	in := time.Date(2025, time.March, 12, 12, 20, 0, 0, time.UTC)

	w := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.memberToken, map[string]string{
		"check_in_datetime": in.Format(time.RFC3339Nano),
		"qr_code":           s.qr.Generate(in),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var checkIn struct {
		IsLate    bool `json:"is_late"`
		IsHalfDay bool `json:"is_half_day"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &checkIn))
	assert.True(t, checkIn.IsLate)
	assert.False(t, checkIn.IsHalfDay)

	w = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.memberToken, map[string]string{
		"check_in_datetime": in.Format(time.RFC3339Nano),
		"qr_code":           s.qr.Generate(in),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	out := in.Add(9 * time.Hour)
	w = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", s.memberToken, map[string]string{
		"check_out_datetime": out.Format(time.RFC3339Nano),
		"qr_code":            "2025-03-12T21:20:00.000Zwrong_suffix",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", s.memberToken, map[string]string{
		"check_out_datetime": out.Format(time.RFC3339Nano),
		"qr_code":            s.qr.Generate(out),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var checkOut struct {
		TotalWorkedMinutes int             `json:"total_worked_minutes"`
		SalaryEarned       decimal.Decimal `json:"salary_earned"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &checkOut))
	assert.Equal(t, 540, checkOut.TotalWorkedMinutes)
	assert.True(t, decimal.NewFromInt(1000).Equal(checkOut.SalaryEarned))
}

func TestLeaveHandler_RequestAndApprove(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/leave-requests", s.memberToken, map[string]interface{}{
		"date": "2025-03-14",
		"days": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = s.do(t, http.MethodGet, "/api/v1/admin/leave-requests?status=pending", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/leave-requests?status=unknown", s.adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/admin/leave-requests/"+created.ID+"/approve", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPatch, "/api/v1/admin/leave-requests/"+created.ID+"/approve", s.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/leave-balance/my?month=3&year=2025", s.memberToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var balance struct {
		AvailableMinutes int `json:"available_minutes"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &balance))
	assert.Equal(t, 540, balance.AvailableMinutes)

	w = s.do(t, http.MethodGet, "/api/v1/leave-balance/my?month=march", s.memberToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHolidayHandler_CRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/admin/holidays", s.adminToken, map[string]string{
		"date": "2025-03-23",
		"name": "Pakistan Day",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))

	w = s.do(t, http.MethodPost, "/api/v1/admin/holidays", s.adminToken, map[string]string{
		"date": "2025-03-23",
		"name": "Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/holidays/not-a-uuid", s.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/admin/holidays/"+created.ID, s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/holidays/"+created.ID, s.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_Downloads(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/admin/salary/monthly/export?month=3&year=2025", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "salary-report-2025-03.xlsx")

	w = s.do(t, http.MethodGet, "/api/v1/admin/salary/employee/"+s.employee.ID+"/slip?month=3&year=2025", s.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.PDFContentType, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.do(t, http.MethodGet, "/api/v1/admin/salary/monthly?month=13&year=2025", s.adminToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
