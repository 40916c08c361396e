package elastic_search

import (
	"fmt"
	"github.com/mintduck/nft-marketplace/internal/config"
)

type Indices string

var (
	ListingIndex      Indices = "listing"
	MarketActionIndex Indices = "marketaction"
	ErrorIndex        Indices = "error"
)

// Prefixes the configured index namespace and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s", config.Get().Index, string(*i))
}
