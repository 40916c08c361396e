package indexer

import (
	"errors"

	"github.com/mintduck/nft-marketplace/internal/dev"
	"github.com/mintduck/nft-marketplace/internal/elastic_search"
	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/mintduck/nft-marketplace/internal/event"
	"github.com/mintduck/nft-marketplace/internal/factory"
	"go.uber.org/zap"
)

// MarketplaceIndexer maintains the elastic read model from marketplace
// events: one document per active listing, one action document per
// successful mutating call.
type MarketplaceIndexer interface {
	Subscribe()
}

type marketplaceIndexer struct {
	elastic elastic_search.Index
}

func NewMarketplaceIndexer(elastic elastic_search.Index) MarketplaceIndexer {
	return marketplaceIndexer{elastic}
}

// Subscribe registers a single listener for every marketplace event so the
// read model sees them in emission order.
func (i marketplaceIndexer) Subscribe() {
	event.AddEventListener(i.handle,
		event.ItemListedEvent,
		event.ItemCanceledEvent,
		event.ListingUpdatedEvent,
		event.ItemBoughtEvent,
		event.ProceedsWithdrawnEvent,
	)
}

func (i marketplaceIndexer) handle(msg interface{}) {
	switch el := msg.(type) {
	case entity.ItemListed:
		i.indexListing(el)
	case entity.ItemCanceled:
		i.indexDelisting(el)
	case entity.ListingUpdated:
		i.indexPriceUpdate(el)
	case entity.ItemBought:
		i.indexSale(el)
	case entity.ProceedsWithdrawn:
		i.indexWithdrawal(el)
	default:
		i.raiseError(msg)
	}
}

// Queues an error document so bad payloads survive the log rotation.
func (i marketplaceIndexer) raiseError(msg interface{}) {
	zap.L().Error("MarketplaceIndexer: Unhandled event payload")
	i.elastic.Save(elastic_search.ErrorIndex.Get(),
		dev.NewError("marketplaceIndexer", "unhandled-payload", errors.New("unhandled event payload"), msg))
}

func (i marketplaceIndexer) indexListing(el entity.ItemListed) {
	zap.L().With(
		zap.String("contract", el.Contract),
		zap.Uint64("tokenId", el.TokenId),
	).Debug("MarketplaceIndexer: Index listing")

	listing := entity.Listing{Contract: el.Contract, TokenId: el.TokenId, Seller: el.Seller, Price: el.Price}
	i.elastic.AddIndexRequest(elastic_search.ListingIndex.Get(), listing)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateListingAction(el))
	i.elastic.Persist()
}

func (i marketplaceIndexer) indexDelisting(el entity.ItemCanceled) {
	zap.L().With(
		zap.String("contract", el.Contract),
		zap.Uint64("tokenId", el.TokenId),
	).Debug("MarketplaceIndexer: Index delisting")

	i.elastic.DeleteByID(entity.CreateListingSlug(el.TokenId, el.Contract), elastic_search.ListingIndex.Get())
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateDelistingAction(el))
	i.elastic.Persist()
}

func (i marketplaceIndexer) indexPriceUpdate(el entity.ListingUpdated) {
	listing := entity.Listing{Contract: el.Contract, TokenId: el.TokenId, Seller: el.Seller, Price: el.Price}
	i.elastic.AddUpdateRequest(elastic_search.ListingIndex.Get(), listing)
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreatePriceUpdateAction(el))
	i.elastic.Persist()
}

func (i marketplaceIndexer) indexSale(el entity.ItemBought) {
	zap.L().With(
		zap.String("contract", el.Contract),
		zap.Uint64("tokenId", el.TokenId),
		zap.String("buyer", el.Buyer),
		zap.String("seller", el.Seller),
		zap.Uint64("paid", el.Paid),
	).Debug("MarketplaceIndexer: Index sale")

	i.elastic.DeleteByID(entity.CreateListingSlug(el.TokenId, el.Contract), elastic_search.ListingIndex.Get())
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateSaleAction(el))
	i.elastic.Persist()
}

func (i marketplaceIndexer) indexWithdrawal(el entity.ProceedsWithdrawn) {
	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), factory.CreateWithdrawalAction(el))
	i.elastic.Persist()
}
