package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

type CatalogServiceInterface interface {
	ListOfferings(ctx context.Context, tier db_models.PlanTier) ([]db_models.ServiceOffering, error)
	CreateOffering(ctx context.Context, req request_models.OfferingRequest) (*db_models.ServiceOffering, error)
	UpdateOffering(ctx context.Context, id uuid.UUID, req request_models.OfferingRequest) (*db_models.ServiceOffering, error)
	DeleteOffering(ctx context.Context, id uuid.UUID) error

	// ValidateServiceIDs checks that every id belongs to tier. Unknown ids
	// are listed in the returned error.
	ValidateServiceIDs(ctx context.Context, tier db_models.PlanTier, ids []string) error

	GetPricing(ctx context.Context) (*db_models.PlanPricing, error)
	UpsertPricing(ctx context.Context, req request_models.PricingRequest) (*db_models.PlanPricing, error)
	QuotePlan(ctx context.Context, tier db_models.PlanTier, serviceCount int) (*resp.PlanQuote, error)
}

type CatalogService struct {
	repo repositories.CatalogRepository
}

func NewCatalogService(repo repositories.CatalogRepository) CatalogServiceInterface {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListOfferings(ctx context.Context, tier db_models.PlanTier) ([]db_models.ServiceOffering, error) {
	if tier != "" && !tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "tier")
	}
	return s.repo.ListOfferings(ctx, tier)
}

func (s *CatalogService) CreateOffering(ctx context.Context, req request_models.OfferingRequest) (*db_models.ServiceOffering, error) {
	tier := db_models.PlanTier(req.Tier)
	if !tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "tier")
	}
	offering := &db_models.ServiceOffering{Tier: tier, Name: req.Name, Description: req.Description}
	if err := s.repo.CreateOffering(ctx, offering); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrOfferingExists
		}
		return nil, err
	}
	return offering, nil
}

func (s *CatalogService) UpdateOffering(ctx context.Context, id uuid.UUID, req request_models.OfferingRequest) (*db_models.ServiceOffering, error) {
	offering, err := s.repo.FindOffering(ctx, id)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, utils.ErrOfferingNotFound
	}

	tier := db_models.PlanTier(req.Tier)
	if !tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "tier")
	}
	offering.Tier = tier
	offering.Name = req.Name
	offering.Description = req.Description

	if err := s.repo.SaveOffering(ctx, offering); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrOfferingExists
		}
		return nil, err
	}
	return offering, nil
}

func (s *CatalogService) DeleteOffering(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeleteOffering(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrOfferingNotFound
	}
	return nil
}

func (s *CatalogService) ValidateServiceIDs(ctx context.Context, tier db_models.PlanTier, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var unknown []string
	canonical := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			unknown = append(unknown, id)
			continue
		}
		canonical = append(canonical, parsed.String())
	}

	found, err := s.repo.ExistingOfferingIDs(ctx, tier, canonical)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range canonical {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return utils.WithDetails(utils.ErrUnknownService, unknown...)
	}
	return nil
}

func (s *CatalogService) GetPricing(ctx context.Context) (*db_models.PlanPricing, error) {
	pricing, err := s.repo.GetPricing(ctx)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		return nil, utils.ErrPricingNotConfigured
	}
	return pricing, nil
}

func (s *CatalogService) UpsertPricing(ctx context.Context, req request_models.PricingRequest) (*db_models.PlanPricing, error) {
	var invalid []string
	if req.BasePrice.IsNegative() {
		invalid = append(invalid, "basePrice")
	}
	if req.GST.IsNegative() || req.GST.GreaterThan(hundred) {
		invalid = append(invalid, "gst")
	}
	if req.PlatformFee.IsNegative() {
		invalid = append(invalid, "platformFee")
	}
	for _, p := range req.SelectPercentage {
		if p.IsNegative() || p.GreaterThan(hundred) {
			invalid = append(invalid, "selectPercentage")
			break
		}
	}
	if len(invalid) > 0 {
		return nil, utils.WithDetails(utils.ErrInvalidField, invalid...)
	}

	pricing, err := s.repo.GetPricing(ctx)
	if err != nil {
		return nil, err
	}
	if pricing == nil {
		pricing = &db_models.PlanPricing{}
	}
	pricing.BasePrice = req.BasePrice
	pricing.SelectPercentage = req.SelectPercentage
	pricing.GST = req.GST
	pricing.GSTEnabled = req.GSTEnabled
	pricing.PlatformFee = req.PlatformFee
	pricing.PlatformFeeEnabled = req.PlatformFeeEnabled

	if err := s.repo.SavePricing(ctx, pricing); err != nil {
		return nil, err
	}
	return pricing, nil
}

func (s *CatalogService) QuotePlan(ctx context.Context, tier db_models.PlanTier, serviceCount int) (*resp.PlanQuote, error) {
	if !tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "tier")
	}
	if serviceCount < 0 {
		return nil, utils.WithDetails(utils.ErrInvalidField, "services")
	}

	quote := &resp.PlanQuote{
		Tier:        tier,
		Services:    serviceCount,
		Lines:       []resp.QuoteLine{},
		Subtotal:    decimal.Zero,
		GST:         decimal.Zero,
		PlatformFee: decimal.Zero,
		Total:       decimal.Zero,
	}
	if tier == db_models.TierFree || serviceCount == 0 {
		return quote, nil
	}

	pricing, err := s.GetPricing(ctx)
	if err != nil {
		return nil, err
	}
	return priceQuote(quote, pricing), nil
}

// priceQuote charges the i-th selected service at
// SelectPercentage[min(i, len-1)] percent of the base price.
func priceQuote(quote *resp.PlanQuote, pricing *db_models.PlanPricing) *resp.PlanQuote {
	subtotal := decimal.Zero
	for i := 0; i < quote.Services; i++ {
		pct := hundred
		if n := len(pricing.SelectPercentage); n > 0 {
			pct = pricing.SelectPercentage[min(i, n-1)]
		}
		amount := pricing.BasePrice.Mul(pct).Div(hundred)
		quote.Lines = append(quote.Lines, resp.QuoteLine{Position: i + 1, Percentage: pct, Amount: amount.Round(2)})
		subtotal = subtotal.Add(amount)
	}

	total := subtotal
	if pricing.GSTEnabled {
		quote.GST = subtotal.Mul(pricing.GST).Div(hundred).Round(2)
		total = total.Add(quote.GST)
	}
	if pricing.PlatformFeeEnabled {
		quote.PlatformFee = pricing.PlatformFee.Round(2)
		total = total.Add(quote.PlatformFee)
	}
	quote.Subtotal = subtotal.Round(2)
	quote.Total = total.Round(2)
	return quote
}
