package entity

// Event payloads emitted by the marketplace on successful mutations. They are
// published for external collaborators (indexer, queue) and never consumed by
// the marketplace itself.

type ItemListed struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Seller   string `json:"seller"`
	Price    uint64 `json:"price"`
}

type ItemCanceled struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Seller   string `json:"seller"`
}

type ListingUpdated struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Seller   string `json:"seller"`
	Price    uint64 `json:"price"`
}

type ItemBought struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Seller   string `json:"seller"`
	Buyer    string `json:"buyer"`
	Price    uint64 `json:"price"`
	Paid     uint64 `json:"paid"`
}

type ProceedsWithdrawn struct {
	Seller string `json:"seller"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}
