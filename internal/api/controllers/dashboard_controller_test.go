package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seraphina/internal/models/response_models"
	"seraphina/pkg/utils"
)

type captureDashboard struct {
	rng      response_models.TimeRange
	currency string
}

func (s *captureDashboard) BuildDashboard(_ context.Context, rng response_models.TimeRange, currency string) (*response_models.DashboardReport, error) {
	s.rng, s.currency = rng, currency
	return &response_models.DashboardReport{Range: rng}, nil
}

func dashboardGet(t *testing.T, path string) (int, utils.APIResponse, *captureDashboard) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &captureDashboard{}
	ctrl := NewDashboardController(svc, "Asia/Kolkata")
	ctrl.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.GET("/api/admin/dashboard", ctrl.GetDashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var out utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out, svc
}

func TestDashboardController_Defaults(t *testing.T) {
	code, out, svc := dashboardGet(t, "/api/admin/dashboard?last_days=7")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, out.Status)
	assert.Equal(t, "INR", svc.currency)
	assert.Equal(t, "Asia/Kolkata", svc.rng.Timezone)
	assert.Equal(t, "day", svc.rng.Interval)
	assert.Equal(t, time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC), svc.rng.Start)
}

func TestDashboardController_ExplicitWindow(t *testing.T) {
	code, _, svc := dashboardGet(t, "/api/admin/dashboard?start=2026-09-01T00:00:00Z&end=2026-10-01T00:00:00Z&interval=week&currency=USD")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "week", svc.rng.Interval)
	assert.Equal(t, "USD", svc.currency)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), svc.rng.Start)
}

func TestDashboardController_BadQuery(t *testing.T) {
	cases := []struct {
		path    string
		details []string
	}{
		{"/api/admin/dashboard?tz=Mars/Olympus", []string{"tz"}},
		{"/api/admin/dashboard?last_days=0", []string{"last_days"}},
		{"/api/admin/dashboard?last_days=3&start=2026-09-01T00:00:00Z", []string{"last_days", "start", "end"}},
		{"/api/admin/dashboard?end=yesterday", []string{"end"}},
	}
	for _, tc := range cases {
		code, out, _ := dashboardGet(t, tc.path)
		assert.Equal(t, http.StatusBadRequest, code, tc.path)
		assert.Equal(t, tc.details, out.Errors, tc.path)
	}
}
