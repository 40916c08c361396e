package factory

import (
	"testing"

	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestCreateSaleAction(t *testing.T) {
	action := CreateSaleAction(entity.ItemBought{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Buyer:    "0x0000000000000000000000000000000000000002",
		Price:    100,
		Paid:     150,
	})

	assert.Equal(t, entity.SaleAction, action.Action)
	assert.Equal(t, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f", action.Contract)
	assert.Equal(t, uint64(1), action.TokenId)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", action.Seller)
	assert.Equal(t, "0x0000000000000000000000000000000000000002", action.Buyer)
	assert.Equal(t, uint64(100), action.Price)
	assert.Equal(t, uint64(150), action.Paid)
	assert.NotZero(t, action.Occurred)
}

func TestCreateListingAction(t *testing.T) {
	action := CreateListingAction(entity.ItemListed{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  2,
		Seller:   "0x0000000000000000000000000000000000000001",
		Price:    100,
	})

	assert.Equal(t, entity.ListingAction, action.Action)
	assert.Equal(t, uint64(2), action.TokenId)
	assert.Equal(t, uint64(100), action.Price)
	assert.Empty(t, action.Buyer)
}

func TestCreateWithdrawalAction(t *testing.T) {
	action := CreateWithdrawalAction(entity.ProceedsWithdrawn{
		Seller: "0x0000000000000000000000000000000000000001",
		To:     "0x0000000000000000000000000000000000000002",
		Amount: 250,
	})

	assert.Equal(t, entity.WithdrawalAction, action.Action)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", action.Seller)
	assert.Equal(t, "0x0000000000000000000000000000000000000002", action.Buyer)
	assert.Equal(t, uint64(250), action.Paid)
	assert.Empty(t, action.Contract)
}
