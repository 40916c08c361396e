package entity

import (
	"crypto/md5"
	"fmt"
)

// MarketAction is the index document written for every successful mutating
// marketplace call. Withdrawal actions have no contract or token id.
type MarketAction struct {
	Contract string     `json:"contract"`
	TokenId  uint64     `json:"tokenId"`
	Action   ActionType `json:"action"`
	Seller   string     `json:"seller"`
	Buyer    string     `json:"buyer"`
	Price    uint64     `json:"price"`
	Paid     uint64     `json:"paid"`
	Occurred int64      `json:"occurred"`
}

type ActionType string

const (
	ListingAction     ActionType = "listing"
	DelistingAction   ActionType = "delisting"
	SaleAction        ActionType = "sale"
	PriceUpdateAction ActionType = "price-update"
	WithdrawalAction  ActionType = "withdrawal"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.TokenId, a.Contract, a.Seller, string(a.Action), a.Occurred)
}

func CreateMarketActionSlug(tokenId uint64, contract, seller, action string, occurred int64) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%s-%s-%d", tokenId, contract, seller, action, occurred))
	return fmt.Sprintf("%x", md5.Sum(data))
}
