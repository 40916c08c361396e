package marketplace

import (
	"sync"

	"github.com/mintduck/nft-marketplace/internal/entity"
	"github.com/mintduck/nft-marketplace/internal/event"
	"github.com/mintduck/nft-marketplace/internal/payments"
	"github.com/mintduck/nft-marketplace/internal/registry"
	"go.uber.org/zap"
)

type Marketplace interface {
	ListItem(contract string, tokenId uint64, price uint64, caller string) error
	CancelListing(contract string, tokenId uint64, caller string) error
	UpdateListing(contract string, tokenId uint64, newPrice uint64, caller string) error
	BuyItems(contract string, tokenId uint64, caller string, paid uint64) error
	WithdrawProceeds(caller, to string) error

	GetListings(contract string, tokenId uint64) (entity.Listing, bool)
	GetProceeds(seller string) uint64
}

type itemKey struct {
	contract string
	tokenId  uint64
}

// marketplace owns the listing registry and the proceeds ledger for their
// entire lifetime. All validation happens before any state mutation; the one
// rollback case is an external capability failing after a tentative
// mutation. Internal state is always mutated before an external capability
// is invoked, so a call that re-enters via that capability finds the listing
// already gone or the balance already zero and fails safely.
type marketplace struct {
	mu       sync.RWMutex
	registry registry.Registry
	payer    payments.Payer
	identity string

	listings map[itemKey]entity.Listing
	proceeds map[string]uint64
}

func NewMarketplace(assetRegistry registry.Registry, payer payments.Payer, identity string) Marketplace {
	return &marketplace{
		registry: assetRegistry,
		payer:    payer,
		identity: identity,
		listings: make(map[itemKey]entity.Listing),
		proceeds: make(map[string]uint64),
	}
}

func (m *marketplace) ListItem(contract string, tokenId uint64, price uint64, caller string) error {
	if price == 0 {
		return ErrPriceMustBeAboveZero
	}

	m.mu.RLock()
	_, exists := m.listings[itemKey{contract, tokenId}]
	m.mu.RUnlock()
	if exists {
		return ErrAlreadyListed
	}

	owner, err := m.registry.OwnerOf(contract, tokenId)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrNotOwner
	}

	approved, err := m.registry.IsApprovedForMarketplace(contract, tokenId, m.identity)
	if err != nil {
		return err
	}
	if !approved {
		return ErrNotApprovedForMarketplace
	}

	listing := entity.Listing{Contract: contract, TokenId: tokenId, Seller: caller, Price: price}

	m.mu.Lock()
	if _, exists := m.listings[itemKey{contract, tokenId}]; exists {
		m.mu.Unlock()
		return ErrAlreadyListed
	}
	m.listings[itemKey{contract, tokenId}] = listing
	m.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
		zap.Uint64("price", price),
	).Info("Marketplace listing")

	event.EmitEvent(event.ItemListedEvent, entity.ItemListed{
		Contract: contract,
		TokenId:  tokenId,
		Seller:   caller,
		Price:    price,
	})

	return nil
}

func (m *marketplace) CancelListing(contract string, tokenId uint64, caller string) error {
	m.mu.Lock()
	listing, exists := m.listings[itemKey{contract, tokenId}]
	if !exists {
		m.mu.Unlock()
		return ErrNotListed
	}
	if listing.Seller != caller {
		m.mu.Unlock()
		return ErrNotOwner
	}
	delete(m.listings, itemKey{contract, tokenId})
	m.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
	).Info("Marketplace delisting")

	event.EmitEvent(event.ItemCanceledEvent, entity.ItemCanceled{
		Contract: contract,
		TokenId:  tokenId,
		Seller:   caller,
	})

	return nil
}

func (m *marketplace) UpdateListing(contract string, tokenId uint64, newPrice uint64, caller string) error {
	m.mu.Lock()
	listing, exists := m.listings[itemKey{contract, tokenId}]
	if !exists {
		m.mu.Unlock()
		return ErrNotListed
	}
	if listing.Seller != caller {
		m.mu.Unlock()
		return ErrNotOwner
	}
	if newPrice == 0 {
		m.mu.Unlock()
		return ErrInvalidUpdatePrice
	}
	listing.Price = newPrice
	m.listings[itemKey{contract, tokenId}] = listing
	m.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
		zap.Uint64("price", newPrice),
	).Info("Marketplace price update")

	event.EmitEvent(event.ListingUpdatedEvent, entity.ListingUpdated{
		Contract: contract,
		TokenId:  tokenId,
		Seller:   caller,
		Price:    newPrice,
	})

	return nil
}

// BuyItems settles a sale. The listing is removed and the seller credited
// before the registry transfer is invoked, so a transfer that re-enters the
// marketplace cannot buy or cancel the same item twice. Overpayment is
// accepted and accrues to the seller in full. Settlement never pushes
// currency to the seller; the seller withdraws at will.
func (m *marketplace) BuyItems(contract string, tokenId uint64, caller string, paid uint64) error {
	m.mu.Lock()
	listing, exists := m.listings[itemKey{contract, tokenId}]
	if !exists {
		m.mu.Unlock()
		return ErrNotListed
	}
	if paid < listing.Price {
		m.mu.Unlock()
		return ErrPriceNotMet
	}
	delete(m.listings, itemKey{contract, tokenId})
	m.proceeds[listing.Seller] += paid
	m.mu.Unlock()

	if err := m.registry.Transfer(contract, tokenId, listing.Seller, caller); err != nil {
		zap.L().With(
			zap.String("contract", contract),
			zap.Uint64("tokenId", tokenId),
			zap.Error(err),
		).Warn("Marketplace sale transfer failed, rolling back")

		m.mu.Lock()
		// A withdrawal may have drained the balance while the transfer was
		// in flight; compensate with at most what is still there.
		if m.proceeds[listing.Seller] > paid {
			m.proceeds[listing.Seller] -= paid
		} else {
			delete(m.proceeds, listing.Seller)
		}
		if _, exists := m.listings[itemKey{contract, tokenId}]; !exists {
			m.listings[itemKey{contract, tokenId}] = listing
		}
		m.mu.Unlock()

		return ErrTransactionFailed
	}

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", caller),
		zap.Uint64("price", listing.Price),
		zap.Uint64("paid", paid),
	).Info("Marketplace sale")

	event.EmitEvent(event.ItemBoughtEvent, entity.ItemBought{
		Contract: contract,
		TokenId:  tokenId,
		Seller:   listing.Seller,
		Buyer:    caller,
		Price:    listing.Price,
		Paid:     paid,
	})

	return nil
}

// WithdrawProceeds pays out the caller's accrued balance. The balance is
// zeroed before the payout attempt and restored if the payout fails, so the
// ledger always reflects exactly what has not yet been successfully paid
// out. A sale can accrue new proceeds while the payout is in flight, which
// is why the rollback adds the amount back rather than overwriting.
func (m *marketplace) WithdrawProceeds(caller, to string) error {
	m.mu.Lock()
	amount := m.proceeds[caller]
	if amount == 0 {
		m.mu.Unlock()
		return ErrNoProceedsFound
	}
	delete(m.proceeds, caller)
	m.mu.Unlock()

	if err := m.payer.PayOut(to, amount); err != nil {
		zap.L().With(
			zap.String("seller", caller),
			zap.Uint64("amount", amount),
			zap.Error(err),
		).Warn("Marketplace withdrawal failed, rolling back")

		m.mu.Lock()
		m.proceeds[caller] += amount
		m.mu.Unlock()

		return ErrTransactionFailed
	}

	zap.L().With(
		zap.String("seller", caller),
		zap.String("to", to),
		zap.Uint64("amount", amount),
	).Info("Marketplace withdrawal")

	event.EmitEvent(event.ProceedsWithdrawnEvent, entity.ProceedsWithdrawn{
		Seller: caller,
		To:     to,
		Amount: amount,
	})

	return nil
}

func (m *marketplace) GetListings(contract string, tokenId uint64) (entity.Listing, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	listing, exists := m.listings[itemKey{contract, tokenId}]
	return listing, exists
}

func (m *marketplace) GetProceeds(seller string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.proceeds[seller]
}
