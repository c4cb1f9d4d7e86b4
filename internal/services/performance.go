package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"seraphina/internal/models/db_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/pkg/utils"
)

type PerformanceRange string

const (
	Range1M  PerformanceRange = "1M"
	Range3M  PerformanceRange = "3M"
	Range6M  PerformanceRange = "6M"
	Range1Y  PerformanceRange = "1Y"
	RangeAll PerformanceRange = "ALL"
)

func ParsePerformanceRange(raw string) (PerformanceRange, error) {
	switch r := PerformanceRange(strings.ToUpper(strings.TrimSpace(raw))); r {
	case "":
		return RangeAll, nil
	case Range1M, Range3M, Range6M, Range1Y, RangeAll:
		return r, nil
	}
	return "", utils.WithDetails(utils.ErrInvalidField, "range")
}

func (r PerformanceRange) months() int {
	switch r {
	case Range1M:
		return 1
	case Range3M:
		return 3
	case Range6M:
		return 6
	case Range1Y:
		return 12
	}
	return 0
}

var roiNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseROI takes the first decimal number of strings such as "12.5% p.a".
func ParseROI(raw string) (decimal.Decimal, error) {
	match := roiNumber.FindString(raw)
	if match == "" {
		return decimal.Zero, utils.WithDetails(utils.ErrInvalidField, "roi")
	}
	return decimal.NewFromString(match)
}

// ProjectValue is simple interest: amount + amount*roi/100*months/12.
func ProjectValue(amount, roi decimal.Decimal, months int) decimal.Decimal {
	gain := amount.Mul(roi).Mul(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(1200))
	return amount.Add(gain).Round(2)
}

// elapsedMonths counts whole months since the purchase started, capped at
// the plan duration. ok is false when the purchase had not started at t.
func elapsedMonths(p db_models.InvestmentPurchase, duration int, at time.Time) (int, bool) {
	if at.Before(p.StartDate) {
		return 0, false
	}
	months := utils.MonthsBetween(p.StartDate, at)
	if duration > 0 && months > duration {
		months = duration
	}
	return months, true
}

type projectedPurchase struct {
	purchase db_models.InvestmentPurchase
	roi      decimal.Decimal
	duration int
	title    string
}

// ComputePerformance is a pure projection over a user's purchases as of
// asOf. Cancelled purchases are ignored.
func ComputePerformance(purchases []db_models.InvestmentPurchase, asOf time.Time, rng PerformanceRange) resp.Performance {
	var items []projectedPurchase
	earliest := asOf
	for _, p := range purchases {
		if p.Status == db_models.PurchaseCancelled {
			continue
		}
		item := projectedPurchase{purchase: p}
		if p.Plan != nil {
			item.duration = p.Plan.DurationMonths
			item.title = p.Plan.Title
			if roi, err := ParseROI(p.Plan.ROI); err == nil {
				item.roi = roi
			}
		}
		items = append(items, item)
		if p.StartDate.Before(earliest) {
			earliest = p.StartDate
		}
	}

	start := earliest
	if m := rng.months(); m > 0 {
		start = utils.AddMonths(asOf, -m)
	}

	out := resp.Performance{
		Range:     string(rng),
		Series:    []resp.PerformancePoint{},
		Breakdown: []resp.PurchasePerformance{},
	}

	pointAt := func(t time.Time) resp.PerformancePoint {
		point := resp.PerformancePoint{Date: t, Invested: decimal.Zero, Value: decimal.Zero}
		for _, item := range items {
			months, ok := elapsedMonths(item.purchase, item.duration, t)
			if !ok {
				continue
			}
			point.Invested = point.Invested.Add(item.purchase.Amount)
			point.Value = point.Value.Add(ProjectValue(item.purchase.Amount, item.roi, months))
		}
		return point
	}

	for i := 0; ; i++ {
		t := utils.AddMonths(start, i)
		if t.After(asOf) {
			break
		}
		out.Series = append(out.Series, pointAt(t))
	}
	if n := len(out.Series); n == 0 || !out.Series[n-1].Date.Equal(asOf) {
		out.Series = append(out.Series, pointAt(asOf))
	}

	summary := resp.PerformanceSummary{
		TotalInvested: decimal.Zero,
		CurrentValue:  decimal.Zero,
		ProfitAmount:  decimal.Zero,
		ProfitPercent: decimal.Zero,
	}
	for _, item := range items {
		months, started := elapsedMonths(item.purchase, item.duration, asOf)
		value := item.purchase.Amount
		if started {
			value = ProjectValue(item.purchase.Amount, item.roi, months)
		}
		summary.TotalInvested = summary.TotalInvested.Add(item.purchase.Amount)
		summary.CurrentValue = summary.CurrentValue.Add(value)
		out.Breakdown = append(out.Breakdown, resp.PurchasePerformance{
			PurchaseID:    item.purchase.ID,
			PlanTitle:     item.title,
			Amount:        item.purchase.Amount,
			ROI:           item.roi,
			MonthsElapsed: months,
			CurrentValue:  value,
			Status:        item.purchase.Status,
		})
	}
	summary.ProfitAmount = summary.CurrentValue.Sub(summary.TotalInvested)
	if summary.TotalInvested.IsPositive() {
		summary.ProfitPercent = summary.ProfitAmount.Mul(hundred).Div(summary.TotalInvested).Round(2)
	}
	out.Summary = summary
	return out
}
