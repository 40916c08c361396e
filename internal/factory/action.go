package factory

import (
	"time"

	"github.com/mintduck/nft-marketplace/internal/entity"
)

func CreateListingAction(el entity.ItemListed) entity.MarketAction {
	return entity.MarketAction{
		Contract: el.Contract,
		TokenId:  el.TokenId,
		Action:   entity.ListingAction,
		Seller:   el.Seller,
		Price:    el.Price,
		Occurred: time.Now().UnixNano(),
	}
}

func CreateDelistingAction(el entity.ItemCanceled) entity.MarketAction {
	return entity.MarketAction{
		Contract: el.Contract,
		TokenId:  el.TokenId,
		Action:   entity.DelistingAction,
		Seller:   el.Seller,
		Occurred: time.Now().UnixNano(),
	}
}

func CreatePriceUpdateAction(el entity.ListingUpdated) entity.MarketAction {
	return entity.MarketAction{
		Contract: el.Contract,
		TokenId:  el.TokenId,
		Action:   entity.PriceUpdateAction,
		Seller:   el.Seller,
		Price:    el.Price,
		Occurred: time.Now().UnixNano(),
	}
}

func CreateSaleAction(el entity.ItemBought) entity.MarketAction {
	return entity.MarketAction{
		Contract: el.Contract,
		TokenId:  el.TokenId,
		Action:   entity.SaleAction,
		Seller:   el.Seller,
		Buyer:    el.Buyer,
		Price:    el.Price,
		Paid:     el.Paid,
		Occurred: time.Now().UnixNano(),
	}
}

func CreateWithdrawalAction(el entity.ProceedsWithdrawn) entity.MarketAction {
	return entity.MarketAction{
		Action:   entity.WithdrawalAction,
		Seller:   el.Seller,
		Buyer:    el.To,
		Paid:     el.Amount,
		Occurred: time.Now().UnixNano(),
	}
}
