package indexer

import (
	"testing"

	"github.com/mintduck/nft-marketplace/internal/dev"
	"github.com/mintduck/nft-marketplace/internal/elastic_search"
	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	indexed  []elastic_search.Request
	updated  []elastic_search.Request
	saved    []elastic_search.Request
	deleted  []string
	persists int
}

func (f *fakeIndex) GetClient() *elastic.Client { return nil }
func (f *fakeIndex) InstallMappings()           {}

func (f *fakeIndex) AddIndexRequest(index string, e entity.Entity) {
	f.indexed = append(f.indexed, elastic_search.Request{Index: index, Entity: e, Type: elastic_search.IndexRequest})
}

func (f *fakeIndex) AddUpdateRequest(index string, e entity.Entity) {
	f.updated = append(f.updated, elastic_search.Request{Index: index, Entity: e, Type: elastic_search.UpdateRequest})
}

func (f *fakeIndex) GetRequests() []elastic_search.Request        { return nil }
func (f *fakeIndex) GetRequest(id string) *elastic_search.Request { return nil }

func (f *fakeIndex) Save(index string, e entity.Entity) {
	f.saved = append(f.saved, elastic_search.Request{Index: index, Entity: e})
}

func (f *fakeIndex) Persist() int {
	f.persists++
	return 0
}

func (f *fakeIndex) DeleteByID(id string, index string) {
	f.deleted = append(f.deleted, id)
}

func TestIndexListing(t *testing.T) {
	fake := &fakeIndex{}
	i := marketplaceIndexer{fake}

	i.handle(entity.ItemListed{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Price:    100,
	})

	require.Len(t, fake.indexed, 2)

	listing, ok := fake.indexed[0].Entity.(entity.Listing)
	require.True(t, ok)
	assert.Equal(t, elastic_search.ListingIndex.Get(), fake.indexed[0].Index)
	assert.Equal(t, uint64(100), listing.Price)

	action, ok := fake.indexed[1].Entity.(entity.MarketAction)
	require.True(t, ok)
	assert.Equal(t, elastic_search.MarketActionIndex.Get(), fake.indexed[1].Index)
	assert.Equal(t, entity.ListingAction, action.Action)

	assert.Equal(t, 1, fake.persists)
}

func TestIndexListingThenDelisting(t *testing.T) {
	fake := &fakeIndex{}
	i := marketplaceIndexer{fake}

	i.handle(entity.ItemListed{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Price:    100,
	})
	i.handle(entity.ItemCanceled{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
	})

	require.Len(t, fake.deleted, 1)
	assert.Equal(t, entity.CreateListingSlug(1, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f"), fake.deleted[0])

	actions := make([]entity.ActionType, 0)
	for _, req := range fake.indexed {
		if action, ok := req.Entity.(entity.MarketAction); ok {
			actions = append(actions, action.Action)
		}
	}
	assert.Equal(t, []entity.ActionType{entity.ListingAction, entity.DelistingAction}, actions)
}

func TestIndexSaleRemovesListing(t *testing.T) {
	fake := &fakeIndex{}
	i := marketplaceIndexer{fake}

	i.handle(entity.ItemBought{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Buyer:    "0x0000000000000000000000000000000000000002",
		Price:    100,
		Paid:     100,
	})

	require.Len(t, fake.deleted, 1)
	assert.Equal(t, entity.CreateListingSlug(1, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f"), fake.deleted[0])

	require.Len(t, fake.indexed, 1)
	action := fake.indexed[0].Entity.(entity.MarketAction)
	assert.Equal(t, entity.SaleAction, action.Action)
	assert.Equal(t, "0x0000000000000000000000000000000000000002", action.Buyer)
}

func TestIndexPriceUpdate(t *testing.T) {
	fake := &fakeIndex{}
	i := marketplaceIndexer{fake}

	i.handle(entity.ListingUpdated{
		Contract: "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f",
		TokenId:  1,
		Seller:   "0x0000000000000000000000000000000000000001",
		Price:    200,
	})

	require.Len(t, fake.updated, 1)
	listing := fake.updated[0].Entity.(entity.Listing)
	assert.Equal(t, uint64(200), listing.Price)

	require.Len(t, fake.indexed, 1)
	action := fake.indexed[0].Entity.(entity.MarketAction)
	assert.Equal(t, entity.PriceUpdateAction, action.Action)
}

func TestUnhandledPayloadRaisesError(t *testing.T) {
	fake := &fakeIndex{}
	i := marketplaceIndexer{fake}

	i.handle("not a marketplace event")

	assert.Empty(t, fake.indexed)
	assert.Zero(t, fake.persists)

	require.Len(t, fake.saved, 1)
	assert.Equal(t, elastic_search.ErrorIndex.Get(), fake.saved[0].Index)

	report, ok := fake.saved[0].Entity.(dev.Error)
	require.True(t, ok)
	assert.Equal(t, "marketplaceIndexer", report.Component)
	assert.Equal(t, "unhandled-payload", report.Name)
}
