package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/mintduck/nft-marketplace/internal/helper"
	"github.com/mintduck/nft-marketplace/internal/marketplace"
	"github.com/mintduck/nft-marketplace/internal/repository"
	"go.uber.org/zap"
)

// Server exposes the marketplace operations over HTTP. The caller identity
// is taken from the X-Caller-Address header, which the fronting substrate is
// trusted to have authenticated.
type Server struct {
	market      marketplace.Marketplace
	listingRepo repository.ListingRepository
	actionRepo  repository.MarketActionRepository
}

func NewServer(market marketplace.Marketplace, listingRepo repository.ListingRepository, actionRepo repository.MarketActionRepository) Server {
	return Server{market, listingRepo, actionRepo}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")

	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleListItem).Methods("POST")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleCancelListing).Methods("DELETE")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleUpdateListing).Methods("PUT")
	r.HandleFunc("/listings/{contract}/{tokenId}/buy", s.handleBuyItems).Methods("POST")
	r.HandleFunc("/withdrawals", s.handleWithdrawProceeds).Methods("POST")

	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{contract}", s.handleGetListingsByContract).Methods("GET")
	r.HandleFunc("/sellers/{address}/listings", s.handleGetListingsBySeller).Methods("GET")
	r.HandleFunc("/proceeds/{address}", s.handleGetProceeds).Methods("GET")
	r.HandleFunc("/actions/{contract}/{tokenId}", s.handleGetActions).Methods("GET")
	r.HandleFunc("/actions/{contract}/{tokenId}/latest", s.handleGetLatestAction).Methods("GET")
	r.HandleFunc("/sales/{address}", s.handleGetSales).Methods("GET")

	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "NFT Marketplace")
}

type priceRequest struct {
	Price uint64 `json:"price"`
}

type buyRequest struct {
	Paid uint64 `json:"paid"`
}

type withdrawRequest struct {
	To string `json:"to"`
}

func (s Server) handleListItem(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}
	caller, ok := getCaller(w, r)
	if !ok {
		return
	}

	var body priceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := s.market.ListItem(contract, tokenId, body.Price, caller); err != nil {
		writeMarketplaceError(w, err)
		return
	}

	writeJson(w, http.StatusCreated, entity.Listing{Contract: contract, TokenId: tokenId, Seller: caller, Price: body.Price})
}

func (s Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}
	caller, ok := getCaller(w, r)
	if !ok {
		return
	}

	if err := s.market.CancelListing(contract, tokenId, caller); err != nil {
		writeMarketplaceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}
	caller, ok := getCaller(w, r)
	if !ok {
		return
	}

	var body priceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := s.market.UpdateListing(contract, tokenId, body.Price, caller); err != nil {
		writeMarketplaceError(w, err)
		return
	}

	writeJson(w, http.StatusOK, entity.Listing{Contract: contract, TokenId: tokenId, Seller: caller, Price: body.Price})
}

func (s Server) handleBuyItems(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}
	caller, ok := getCaller(w, r)
	if !ok {
		return
	}

	var body buyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := s.market.BuyItems(contract, tokenId, caller, body.Paid); err != nil {
		writeMarketplaceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s Server) handleWithdrawProceeds(w http.ResponseWriter, r *http.Request) {
	caller, ok := getCaller(w, r)
	if !ok {
		return
	}

	var body withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	to := caller
	if body.To != "" {
		normalized, err := helper.NormalizeAddress(body.To)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid payout address"))
			return
		}
		to = normalized
	}

	if err := s.market.WithdrawProceeds(caller, to); err != nil {
		writeMarketplaceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}

	listing, exists := s.market.GetListings(contract, tokenId)
	if !exists {
		writeError(w, http.StatusNotFound, marketplace.ErrNotListed)
		return
	}

	writeJson(w, http.StatusOK, listing)
}

func (s Server) handleGetListingsByContract(w http.ResponseWriter, r *http.Request) {
	contract, err := getAddress(r, "contract")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	size, page := getPagination(r)

	listings, total, err := s.listingRepo.GetListingsByContract(contract, size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("API: Failed to get listings")
		writeError(w, http.StatusInternalServerError, errors.New("listings not available"))
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJson(w, http.StatusOK, listings)
}

func (s Server) handleGetListingsBySeller(w http.ResponseWriter, r *http.Request) {
	address, err := getAddress(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	size, page := getPagination(r)

	listings, total, err := s.listingRepo.GetListingsBySeller(address, size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("API: Failed to get listings")
		writeError(w, http.StatusInternalServerError, errors.New("listings not available"))
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJson(w, http.StatusOK, listings)
}

func (s Server) handleGetProceeds(w http.ResponseWriter, r *http.Request) {
	address, err := getAddress(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, http.StatusOK, map[string]uint64{"proceeds": s.market.GetProceeds(address)})
}

func (s Server) handleGetActions(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}
	size, page := getPagination(r)

	actions, total, err := s.actionRepo.GetActions(contract, tokenId, size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("API: Failed to get actions")
		writeError(w, http.StatusInternalServerError, errors.New("actions not available"))
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJson(w, http.StatusOK, actions)
}

func (s Server) handleGetLatestAction(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getItem(w, r)
	if !ok {
		return
	}

	action, err := s.actionRepo.GetLatestAction(contract, tokenId)
	if err != nil {
		if errors.Is(err, repository.ErrMarketActionNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		zap.L().With(zap.Error(err)).Warn("API: Failed to get latest action")
		writeError(w, http.StatusInternalServerError, errors.New("actions not available"))
		return
	}

	writeJson(w, http.StatusOK, action)
}

func (s Server) handleGetSales(w http.ResponseWriter, r *http.Request) {
	address, err := getAddress(r, "address")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	size, page := getPagination(r)

	sales, total, err := s.actionRepo.GetSalesBySeller(address, size, page)
	if err != nil {
		zap.L().With(zap.Error(err)).Warn("API: Failed to get sales")
		writeError(w, http.StatusInternalServerError, errors.New("sales not available"))
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	writeJson(w, http.StatusOK, sales)
}

func getItem(w http.ResponseWriter, r *http.Request) (string, uint64, bool) {
	contract, err := getAddress(r, "contract")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", 0, false
	}

	tokenId, err := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid token id"))
		return "", 0, false
	}

	return contract, tokenId, true
}

func getAddress(r *http.Request, key string) (string, error) {
	raw, ok := mux.Vars(r)[key]
	if !ok || raw == "" {
		return "", errors.New("invalid parameters")
	}

	return helper.NormalizeAddress(raw)
}

func getCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get("X-Caller-Address")
	if raw == "" {
		writeError(w, http.StatusUnauthorized, errors.New("caller address required"))
		return "", false
	}

	caller, err := helper.NormalizeAddress(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid caller address"))
		return "", false
	}

	return caller, true
}

func getPagination(r *http.Request) (int, int) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 || size > 100 {
		size = 25
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return size, page
}

func writeMarketplaceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplace.ErrNotListed):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, marketplace.ErrNoProceedsFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, marketplace.ErrAlreadyListed):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, marketplace.ErrNotOwner):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, marketplace.ErrNotApprovedForMarketplace):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, marketplace.ErrPriceMustBeAboveZero):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, marketplace.ErrInvalidUpdatePrice):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, marketplace.ErrPriceNotMet):
		writeError(w, http.StatusPaymentRequired, err)
	case errors.Is(err, marketplace.ErrTransactionFailed):
		writeError(w, http.StatusBadGateway, err)
	default:
		zap.L().With(zap.Error(err)).Error("API: Unexpected marketplace error")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func writeJson(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
