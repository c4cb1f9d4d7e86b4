package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"seraphina/internal/models/response_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardService
	timezone         string
	now              func() time.Time
}

func NewDashboardController(dashboardService services.DashboardService, timezone string) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		timezone:         timezone,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// GetDashboard godoc
// @Summary Admin dashboard
// @Description User and plan KPIs, plan revenue series, active plan mix, ledger totals and recent transactions
// @Tags Admin
// @Produce json
// @Param start     query string false "RFC3339 start"
// @Param end       query string false "RFC3339 end"
// @Param last_days query int    false "Lookback in days, not combinable with start/end (default 30)"
// @Param interval  query string false "day | week | month (default day)"
// @Param tz        query string false "IANA timezone for bucketing (default TIMEZONE setting)"
// @Param currency  query string false "Currency label (default INR)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (d *DashboardController) GetDashboard(c *gin.Context) {
	rng, err := d.timeRange(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	report, err := d.dashboardService.BuildDashboard(c.Request.Context(), rng, c.DefaultQuery("currency", "INR"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard data fetched successfully")
}

// timeRange reads the query window. Interval validation and defaults for
// an empty window are left to the service.
func (d *DashboardController) timeRange(c *gin.Context) (response_models.TimeRange, error) {
	rng := response_models.TimeRange{
		Interval: c.DefaultQuery("interval", "day"),
		Timezone: c.DefaultQuery("tz", d.timezone),
	}
	if _, err := time.LoadLocation(rng.Timezone); err != nil {
		return rng, utils.WithDetails(utils.ErrInvalidField, "tz")
	}

	startStr, endStr, lastDays := c.Query("start"), c.Query("end"), c.Query("last_days")
	if lastDays != "" {
		if startStr != "" || endStr != "" {
			return rng, utils.WithDetails(utils.ErrInvalidField, "last_days", "start", "end")
		}
		n, err := strconv.Atoi(lastDays)
		if err != nil || n <= 0 {
			return rng, utils.WithDetails(utils.ErrInvalidField, "last_days")
		}
		rng.End = d.now()
		rng.Start = rng.End.AddDate(0, 0, -n)
		return rng, nil
	}

	var err error
	if startStr != "" {
		if rng.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
			return rng, utils.WithDetails(utils.ErrInvalidField, "start")
		}
	}
	if endStr != "" {
		if rng.End, err = time.Parse(time.RFC3339, endStr); err != nil {
			return rng, utils.WithDetails(utils.ErrInvalidField, "end")
		}
	}
	return rng, nil
}
