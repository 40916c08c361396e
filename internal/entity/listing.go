package entity

import (
	"fmt"
	"github.com/gosimple/slug"
)

// Listing is an active sale offer for a single item. A listing exists if and
// only if the offer is active and unsold; Price is always greater than zero
// for a present entry.
type Listing struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Seller   string `json:"seller"`
	Price    uint64 `json:"price"`
}

func (l Listing) Slug() string {
	return CreateListingSlug(l.TokenId, l.Contract)
}

func CreateListingSlug(tokenId uint64, contract string) string {
	return slug.Make(fmt.Sprintf("listing-%d-%s", tokenId, contract))
}
