package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/mintduck/nft-marketplace/internal/marketplace"
	"github.com/mintduck/nft-marketplace/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testContract = "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f"
	testSeller   = "0x0000000000000000000000000000000000000001"
	testBuyer    = "0x0000000000000000000000000000000000000002"
	testMarket   = "0x00000000000000000000000000000000000000ff"
)

type stubRegistry struct {
	owner    string
	approved bool
}

func (r stubRegistry) OwnerOf(contract string, tokenId uint64) (string, error) {
	if r.owner == "" {
		return "", errors.New("item does not exist")
	}
	return r.owner, nil
}

func (r stubRegistry) IsApprovedForMarketplace(contract string, tokenId uint64, marketplace string) (bool, error) {
	return r.approved, nil
}

func (r stubRegistry) Transfer(contract string, tokenId uint64, from, to string) error {
	return nil
}

type stubPayer struct {
	err error
}

func (p stubPayer) PayOut(to string, amount uint64) error {
	return p.err
}

type stubListingRepo struct {
	listings []entity.Listing
}

func (r stubListingRepo) GetListing(contract string, tokenId uint64) (entity.Listing, error) {
	return entity.Listing{}, errors.New("not used")
}

func (r stubListingRepo) GetListingsByContract(contract string, size, page int) ([]entity.Listing, int64, error) {
	return r.listings, int64(len(r.listings)), nil
}

func (r stubListingRepo) GetListingsBySeller(seller string, size, page int) ([]entity.Listing, int64, error) {
	return r.listings, int64(len(r.listings)), nil
}

type stubActionRepo struct {
	actions []entity.MarketAction
	latest  *entity.MarketAction
}

func (r stubActionRepo) GetActions(contract string, tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	return r.actions, int64(len(r.actions)), nil
}

func (r stubActionRepo) GetSalesBySeller(seller string, size, page int) ([]entity.MarketAction, int64, error) {
	return r.actions, int64(len(r.actions)), nil
}

func (r stubActionRepo) GetLatestAction(contract string, tokenId uint64) (*entity.MarketAction, error) {
	if r.latest == nil {
		return nil, repository.ErrMarketActionNotFound
	}
	return r.latest, nil
}

func newTestServer() Server {
	market := marketplace.NewMarketplace(stubRegistry{owner: testSeller, approved: true}, stubPayer{}, testMarket)
	return NewServer(market, stubListingRepo{}, stubActionRepo{})
}

func doRequest(t *testing.T, server Server, method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reader)
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	return rec
}

func TestListCancelFlow(t *testing.T) {
	server := newTestServer()
	path := "/listings/" + testContract + "/1"

	rec := doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, server, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing entity.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, testSeller, listing.Seller)
	assert.Equal(t, uint64(100), listing.Price)

	rec = doRequest(t, server, http.MethodDelete, path, testSeller, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, server, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuyAndWithdrawFlow(t *testing.T) {
	server := newTestServer()
	path := "/listings/" + testContract + "/1"

	rec := doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, server, http.MethodPost, path+"/buy", testBuyer, buyRequest{Paid: 100})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodGet, "/proceeds/"+testSeller, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var proceeds map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &proceeds))
	assert.Equal(t, uint64(100), proceeds["proceeds"])

	rec = doRequest(t, server, http.MethodPost, "/withdrawals", testSeller, withdrawRequest{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/withdrawals", testSeller, withdrawRequest{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	t.Run("missing caller is unauthorized", func(t *testing.T) {
		server := newTestServer()
		rec := doRequest(t, server, http.MethodPost, "/listings/"+testContract+"/1", "", priceRequest{Price: 100})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("zero price is a bad request", func(t *testing.T) {
		server := newTestServer()
		rec := doRequest(t, server, http.MethodPost, "/listings/"+testContract+"/1", testSeller, priceRequest{Price: 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non owner listing is forbidden", func(t *testing.T) {
		server := newTestServer()
		rec := doRequest(t, server, http.MethodPost, "/listings/"+testContract+"/1", testBuyer, priceRequest{Price: 100})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("relisting is a conflict", func(t *testing.T) {
		server := newTestServer()
		path := "/listings/" + testContract + "/1"
		require.Equal(t, http.StatusCreated, doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100}).Code)

		rec := doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("underpayment requires payment", func(t *testing.T) {
		server := newTestServer()
		path := "/listings/" + testContract + "/1"
		require.Equal(t, http.StatusCreated, doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100}).Code)

		rec := doRequest(t, server, http.MethodPost, path+"/buy", testBuyer, buyRequest{Paid: 50})
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	})

	t.Run("buying an unlisted item is not found", func(t *testing.T) {
		server := newTestServer()
		rec := doRequest(t, server, http.MethodPost, "/listings/"+testContract+"/1/buy", testBuyer, buyRequest{Paid: 100})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("failed payout is a bad gateway", func(t *testing.T) {
		market := marketplace.NewMarketplace(stubRegistry{owner: testSeller, approved: true}, stubPayer{err: errors.New("gateway down")}, testMarket)
		server := NewServer(market, stubListingRepo{}, stubActionRepo{})
		path := "/listings/" + testContract + "/1"

		require.Equal(t, http.StatusCreated, doRequest(t, server, http.MethodPost, path, testSeller, priceRequest{Price: 100}).Code)
		require.Equal(t, http.StatusOK, doRequest(t, server, http.MethodPost, path+"/buy", testBuyer, buyRequest{Paid: 100}).Code)

		rec := doRequest(t, server, http.MethodPost, "/withdrawals", testSeller, withdrawRequest{})
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		rec = doRequest(t, server, http.MethodGet, "/proceeds/"+testSeller, "", nil)
		var proceeds map[string]uint64
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &proceeds))
		assert.Equal(t, uint64(100), proceeds["proceeds"])
	})
}

func TestGetListingsByContract(t *testing.T) {
	listings := []entity.Listing{
		{Contract: testContract, TokenId: 1, Seller: testSeller, Price: 100},
		{Contract: testContract, TokenId: 2, Seller: testSeller, Price: 200},
	}
	server := NewServer(newTestServer().market, stubListingRepo{listings: listings}, stubActionRepo{})

	rec := doRequest(t, server, http.MethodGet, "/listings/"+testContract, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-Total-Count"))

	var got []entity.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestGetListingsBySeller(t *testing.T) {
	listings := []entity.Listing{
		{Contract: testContract, TokenId: 1, Seller: testSeller, Price: 100},
	}
	server := NewServer(newTestServer().market, stubListingRepo{listings: listings}, stubActionRepo{})

	rec := doRequest(t, server, http.MethodGet, "/sellers/"+testSeller+"/listings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
}

func TestGetLatestAction(t *testing.T) {
	t.Run("returns the latest action", func(t *testing.T) {
		latest := &entity.MarketAction{Contract: testContract, TokenId: 1, Action: entity.SaleAction}
		server := NewServer(newTestServer().market, stubListingRepo{}, stubActionRepo{latest: latest})

		rec := doRequest(t, server, http.MethodGet, "/actions/"+testContract+"/1/latest", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got entity.MarketAction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, entity.SaleAction, got.Action)
	})

	t.Run("not found without history", func(t *testing.T) {
		server := newTestServer()
		rec := doRequest(t, server, http.MethodGet, "/actions/"+testContract+"/1/latest", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
