package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

func TestCatalogService_Offerings(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(repositories.NewCatalogRepository(db))
	ctx := context.Background()

	equity, err := svc.CreateOffering(ctx, request_models.OfferingRequest{Tier: "business", Name: "Equity Research"})
	require.NoError(t, err)

	_, err = svc.CreateOffering(ctx, request_models.OfferingRequest{Tier: "business", Name: "Equity Research"})
	assert.ErrorIs(t, err, utils.ErrOfferingExists)

	// same name in another tier is fine
	_, err = svc.CreateOffering(ctx, request_models.OfferingRequest{Tier: "individual", Name: "Equity Research"})
	require.NoError(t, err)

	list, err := svc.ListOfferings(ctx, db_models.TierBusiness)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, equity.ID, list[0].ID)

	updated, err := svc.UpdateOffering(ctx, equity.ID, request_models.OfferingRequest{Tier: "business", Name: "Derivatives"})
	require.NoError(t, err)
	assert.Equal(t, "Derivatives", updated.Name)

	require.NoError(t, svc.DeleteOffering(ctx, equity.ID))
	assert.ErrorIs(t, svc.DeleteOffering(ctx, equity.ID), utils.ErrOfferingNotFound)
}

func TestCatalogService_ValidateServiceIDs(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(repositories.NewCatalogRepository(db))
	ctx := context.Background()

	a, err := svc.CreateOffering(ctx, request_models.OfferingRequest{Tier: "business", Name: "A"})
	require.NoError(t, err)
	other, err := svc.CreateOffering(ctx, request_models.OfferingRequest{Tier: "institutional", Name: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.ValidateServiceIDs(ctx, db_models.TierBusiness, []string{a.ID.String()}))
	require.NoError(t, svc.ValidateServiceIDs(ctx, db_models.TierBusiness, nil))

	missing := uuid.New().String()
	err = svc.ValidateServiceIDs(ctx, db_models.TierBusiness, []string{a.ID.String(), other.ID.String(), missing, "nope"})
	assert.ErrorIs(t, err, utils.ErrUnknownService)
	assert.ElementsMatch(t, []string{other.ID.String(), missing, "nope"}, utils.ErrorDetails(err))
}

func TestCatalogService_QuotePlan(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(repositories.NewCatalogRepository(db))
	ctx := context.Background()

	_, err := svc.QuotePlan(ctx, db_models.TierBusiness, 2)
	assert.ErrorIs(t, err, utils.ErrPricingNotConfigured)

	free, err := svc.QuotePlan(ctx, db_models.TierFree, 3)
	require.NoError(t, err)
	assert.True(t, free.Total.IsZero())

	_, err = svc.UpsertPricing(ctx, request_models.PricingRequest{
		BasePrice:          decimal.NewFromInt(1000),
		SelectPercentage:   []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(80), decimal.NewFromInt(60)},
		GST:                decimal.NewFromInt(18),
		GSTEnabled:         true,
		PlatformFee:        decimal.NewFromInt(50),
		PlatformFeeEnabled: true,
	})
	require.NoError(t, err)

	quote, err := svc.QuotePlan(ctx, db_models.TierBusiness, 4)
	require.NoError(t, err)
	require.Len(t, quote.Lines, 4)
	assert.True(t, decimal.NewFromInt(600).Equal(quote.Lines[3].Amount), "last percentage repeats")
	assert.True(t, decimal.NewFromInt(3000).Equal(quote.Subtotal))
	assert.True(t, decimal.NewFromInt(540).Equal(quote.GST))
	assert.True(t, decimal.NewFromInt(50).Equal(quote.PlatformFee))
	assert.True(t, decimal.NewFromInt(3590).Equal(quote.Total))

	// a second upsert updates the singleton row
	_, err = svc.UpsertPricing(ctx, request_models.PricingRequest{BasePrice: decimal.NewFromInt(500)})
	require.NoError(t, err)
	quote, err = svc.QuotePlan(ctx, db_models.TierIndividual, 2)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(quote.Total))
}

func TestCatalogService_UpsertPricingValidation(t *testing.T) {
	db := testdb.New(t)
	svc := NewCatalogService(repositories.NewCatalogRepository(db))

	_, err := svc.UpsertPricing(context.Background(), request_models.PricingRequest{
		BasePrice: decimal.NewFromInt(-1),
		GST:       decimal.NewFromInt(120),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidField)
	assert.Equal(t, []string{"basePrice", "gst"}, utils.ErrorDetails(err))
}
