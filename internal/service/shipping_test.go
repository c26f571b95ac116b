package service

import (
	"context"
	"testing"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/dto"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFee_Tiers(t *testing.T) {
	db := testDB(t)
	svc := NewShippingService(repository.NewShippingRateRepository(db))
	ctx := context.Background()

	err := svc.ReplaceSettings(ctx, &dto.ShippingSettings{
		Rates: []dto.SpecificRate{
			{Country: "Nigeria", State: "Lagos", City: "Ikeja", Price: 1500},
			{Country: "Nigeria", State: "Abuja", City: "", Price: 2500}, // state-wide
		},
		FlatFee: 2000,
	})
	require.NoError(t, err)

	// exact city match
	res, err := svc.ResolveFee(ctx, "Nigeria", "Lagos", "Ikeja")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, res.Fee)
	assert.Equal(t, "specific", res.Tier)

	// matching is case-insensitive
	res, err = svc.ResolveFee(ctx, "NIGERIA", "lagos", "IKEJA")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, res.Fee)
	assert.Equal(t, "specific", res.Tier)

	// state-wide sentinel
	res, err = svc.ResolveFee(ctx, "Nigeria", "Abuja", "Gwarinpa")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, res.Fee)
	assert.Equal(t, "specific", res.Tier)

	// no specific rate falls back to flat
	res, err = svc.ResolveFee(ctx, "Nigeria", "Lagos", "Yaba")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, res.Fee)
	assert.Equal(t, "flat", res.Tier)
}

func TestResolveFee_NoRatesConfigured(t *testing.T) {
	db := testDB(t)
	svc := NewShippingService(repository.NewShippingRateRepository(db))

	res, err := svc.ResolveFee(context.Background(), "Nigeria", "Lagos", "Ikeja")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Fee)
	assert.Equal(t, "flat", res.Tier)
}

func TestReplaceSettings_SwapsWholeSet(t *testing.T) {
	db := testDB(t)
	svc := NewShippingService(repository.NewShippingRateRepository(db))
	ctx := context.Background()

	require.NoError(t, svc.ReplaceSettings(ctx, &dto.ShippingSettings{
		Rates: []dto.SpecificRate{
			{Country: "Nigeria", State: "Lagos", City: "Ikeja", Price: 1500},
			{Country: "Nigeria", State: "Lagos", City: "Yaba", Price: 1200},
		},
		FlatFee: 2000,
	}))

	// the second submit is the full desired set; Yaba must be gone after it
	require.NoError(t, svc.ReplaceSettings(ctx, &dto.ShippingSettings{
		Rates: []dto.SpecificRate{
			{Country: "Nigeria", State: "Lagos", City: "Ikeja", Price: 1800},
		},
		FlatFee: 2200,
	}))

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings.Rates, 1)
	assert.Equal(t, "ikeja", settings.Rates[0].City)
	assert.Equal(t, 1800.0, settings.Rates[0].Price)
	assert.Equal(t, 2200.0, settings.FlatFee)

	res, err := svc.ResolveFee(ctx, "Nigeria", "Lagos", "Yaba")
	require.NoError(t, err)
	assert.Equal(t, 2200.0, res.Fee)
	assert.Equal(t, "flat", res.Tier)
}
