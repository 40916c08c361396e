package marketplace

import "errors"

var (
	ErrNotListed                 = errors.New("item not listed")
	ErrAlreadyListed             = errors.New("item already listed")
	ErrNotOwner                  = errors.New("caller is not the owner")
	ErrNotApprovedForMarketplace = errors.New("marketplace not approved to transfer item")
	ErrPriceMustBeAboveZero      = errors.New("price must be above zero")
	ErrInvalidUpdatePrice        = errors.New("updated price must be above zero")
	ErrPriceNotMet               = errors.New("price not met")
	ErrNoProceedsFound           = errors.New("no proceeds found")
	ErrTransactionFailed         = errors.New("transaction failed")
)
