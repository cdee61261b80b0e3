package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/glowdesk/salon-backend-go/internal/domain/user"
	"github.com/glowdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/glowdesk/salon-backend-go/internal/repository/sqlite"
	attendanceService "github.com/glowdesk/salon-backend-go/internal/service/attendance"
	payrollService "github.com/glowdesk/salon-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	store   *sqlite.Store
	handler http.Handler
	jwt     jwt.Service
	staff   staff.StaffRepository
	maya    staff.Member
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	staffRepo := sqlite.NewStaffRepository(store)
	attendanceRepo := sqlite.NewAttendanceRepository(store)

	maya, err := staffRepo.Upsert(context.Background(), staff.Member{
		Name:       "Maya",
		Role:       "stylist",
		SalaryType: staff.SalaryTypeHourly,
		HourlyRate: decimal.NewFromInt(150),
		Active:     true,
	})
	require.NoError(t, err)

	policy := attendance.Policy{LateAfter: 9*time.Hour + 30*time.Minute, Location: time.UTC}
	now := func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) }

	jwtService := jwt.NewJWTService(handlerTestSecret, time.Hour)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, staffRepo, policy, now)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, staffRepo, policy)

	router := NewRouter(
		RouterConfig{Env: "test", Version: "test", AllowedOrigins: []string{"*"}, LogLevel: slog.LevelError, Store: store},
		jwtService,
		NewAttendanceHandler(attendanceSvc, staffRepo),
		NewPayrollHandler(payrollSvc, staffRepo),
	)

	return &testServer{store: store, handler: router, jwt: jwtService, staff: staffRepo, maya: maya}
}

func (s *testServer) token(t *testing.T, p user.Principal) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(p)
	require.NoError(t, err)
	return token
}

func (s *testServer) staffToken(t *testing.T) string {
	return s.token(t, user.Principal{UserID: "u1", StaffID: s.maya.ID, StaffName: s.maya.Name, Role: user.RoleStaff})
}

func (s *testServer) managerToken(t *testing.T) string {
	return s.token(t, user.Principal{UserID: "u2", StaffID: "m1", StaffName: "Boss", Role: user.RoleManager})
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/punch-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PunchFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/punch-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/punch-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decode(t, rec).Error.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status attendance.TodayStatusResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &status))
	assert.True(t, status.HasPunchedIn)
	assert.False(t, status.HasPunchedOut)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/punch-out", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PunchWithoutStaffClaim(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.Principal{UserID: "owner", Role: user.RoleOwner})

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/punch-in", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ManualMarkIsManagerOnly(t *testing.T) {
	s := newTestServer(t)
	body := attendance.ManualMarkRequest{
		StaffID: s.maya.ID, StaffName: "Maya", Date: "2024-03-01", Status: "absent",
	}

	rec := s.do(t, http.MethodPut, "/api/v1/attendance/manual", s.staffToken(t), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/attendance/manual", s.managerToken(t), body)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouter_ManualMarkValidation(t *testing.T) {
	s := newTestServer(t)
	in := "09:00"
	body := attendance.ManualMarkRequest{
		StaffID: s.maya.ID, StaffName: "Maya", Date: "2024-03-01", Status: "leave", PunchInTime: &in,
	}

	rec := s.do(t, http.MethodPut, "/api/v1/attendance/manual", s.managerToken(t), body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "punch_in_time")
}

func TestRouter_BulkMark(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/bulk", s.managerToken(t), attendance.BulkMarkRequest{
		StaffIDs: []string{s.maya.ID, "ghost"},
		Dates:    []string{"2024-03-01", "2024-03-02"},
		Status:   "absent",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result attendance.BulkMarkResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, result.Failed)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/bulk", s.managerToken(t), attendance.BulkMarkRequest{
		Dates: []string{"2024-03-01"}, Status: "absent",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	manager := s.managerToken(t)

	rec := s.do(t, http.MethodPatch, "/api/v1/attendance/Maya/2024-03-01", manager, map[string]any{"work_hours": 6})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/attendance/manual", manager, attendance.ManualMarkRequest{
		StaffID: s.maya.ID, StaffName: "Maya", Date: "2024-03-01", Status: "present",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/v1/attendance/Maya/2024-03-01", manager, map[string]any{"work_hours": 6})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated attendance.RecordResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &updated))
	assert.Equal(t, 6.0, updated.EffectiveHours)

	rec = s.do(t, http.MethodDelete, "/api/v1/attendance/Maya/2024-03-01", manager, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/v1/attendance/Maya/2024-03-01", manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_StaffSeesOnlyOwnRecords(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/Maya?month=2024-03", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/Ana?month=2024-03", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/stats?month=2024-03", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/Maya/stats?month=2024-13", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_StatsAndExport(t *testing.T) {
	s := newTestServer(t)
	manager := s.managerToken(t)
	in, out := "09:00", "17:00"

	rec := s.do(t, http.MethodPut, "/api/v1/attendance/manual", manager, attendance.ManualMarkRequest{
		StaffID: s.maya.ID, StaffName: "Maya", Date: "2024-03-01", Status: "present",
		PunchInTime: &in, PunchOutTime: &out,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/stats?month=2024-03", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []attendance.MonthlyStats
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &all))
	require.Len(t, all, 1)
	assert.Equal(t, 8.0, all[0].TotalWorkHours)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/Maya/export?month=2024-03", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance_Maya_2024-03.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Date,Day,Punch In,Punch Out,Work Hours,Status\n"))
	assert.Contains(t, rec.Body.String(), "2024-03-01,Friday,09:00,17:00,8,present")
}

func TestRouter_Payroll(t *testing.T) {
	s := newTestServer(t)
	manager := s.managerToken(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll?month=2024-03", s.staffToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/"+s.maya.ID+"?month=2024-03", manager, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/unknown?month=2024-03", manager, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll?month=03-2024", manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/export?month=2024-03", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll_2024-03.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestReadiness(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, s.store.Close())
	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
