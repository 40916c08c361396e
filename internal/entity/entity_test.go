package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingSlug(t *testing.T) {
	listing := Listing{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Price:    100,
	}

	assert.Equal(t, "listing-1-0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f", listing.Slug())
	assert.Equal(t, listing.Slug(), CreateListingSlug(1, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f"))
}

func TestMarketActionSlug(t *testing.T) {
	sale := MarketAction{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Action:   SaleAction,
		Seller:   "0x0000000000000000000000000000000000000001",
		Occurred: 1650000000000000000,
	}

	assert.Equal(t, sale.Slug(), sale.Slug())

	delisting := sale
	delisting.Action = DelistingAction
	assert.NotEqual(t, sale.Slug(), delisting.Slug())

	later := sale
	later.Occurred++
	assert.NotEqual(t, sale.Slug(), later.Slug())
}
