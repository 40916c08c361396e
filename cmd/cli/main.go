package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mintduck/nft-marketplace/internal/config"
	"github.com/mintduck/nft-marketplace/internal/config/di"
	"github.com/mintduck/nft-marketplace/internal/helper"
	"github.com/mintduck/nft-marketplace/internal/marketplace"
	"github.com/mintduck/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	container   *di.Container
	market      marketplace.Marketplace
	listingRepo repository.ListingRepository
	actionRepo  repository.MarketActionRepository
)

func main() {
	config.Init()

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}
	market = container.GetMarketplace()
	listingRepo = container.GetListingRepo()
	actionRepo = container.GetActionRepo()

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List an item for sale",
				Action: listItem,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true, Usage: "caller address"},
					&cli.Uint64Flag{Name: "price", Required: true, Usage: "sale price"},
				},
				ArgsUsage: "<contract> <tokenId>",
			},
			{
				Name:   "cancel",
				Usage:  "Cancel an active listing",
				Action: cancelListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true, Usage: "caller address"},
				},
				ArgsUsage: "<contract> <tokenId>",
			},
			{
				Name:   "update",
				Usage:  "Update the price of an active listing",
				Action: updateListing,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true, Usage: "caller address"},
					&cli.Uint64Flag{Name: "price", Required: true, Usage: "new sale price"},
				},
				ArgsUsage: "<contract> <tokenId>",
			},
			{
				Name:   "buy",
				Usage:  "Buy a listed item",
				Action: buyItems,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true, Usage: "caller address"},
					&cli.Uint64Flag{Name: "paid", Required: true, Usage: "payment amount"},
				},
				ArgsUsage: "<contract> <tokenId>",
			},
			{
				Name:   "withdraw",
				Usage:  "Withdraw accrued sale proceeds",
				Action: withdrawProceeds,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "caller", Required: true, Usage: "caller address"},
					&cli.StringFlag{Name: "to", Usage: "payout address (defaults to caller)"},
				},
			},
			{
				Name:      "listings",
				Usage:     "Show the active listings for a contract",
				Action:    getListings,
				ArgsUsage: "<contract>",
			},
			{
				Name:      "proceeds",
				Usage:     "Show the withdrawable proceeds for a seller",
				Action:    getProceeds,
				ArgsUsage: "<address>",
			},
			{
				Name:      "actions",
				Usage:     "Show the action history for an item",
				Action:    getActions,
				ArgsUsage: "<contract> <tokenId>",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Command failed")
	}
}

func listItem(c *cli.Context) error {
	contract, tokenId, err := itemArgs(c)
	if err != nil {
		return err
	}
	caller, err := helper.NormalizeAddress(c.String("caller"))
	if err != nil {
		return err
	}

	return market.ListItem(contract, tokenId, c.Uint64("price"), caller)
}

func cancelListing(c *cli.Context) error {
	contract, tokenId, err := itemArgs(c)
	if err != nil {
		return err
	}
	caller, err := helper.NormalizeAddress(c.String("caller"))
	if err != nil {
		return err
	}

	return market.CancelListing(contract, tokenId, caller)
}

func updateListing(c *cli.Context) error {
	contract, tokenId, err := itemArgs(c)
	if err != nil {
		return err
	}
	caller, err := helper.NormalizeAddress(c.String("caller"))
	if err != nil {
		return err
	}

	return market.UpdateListing(contract, tokenId, c.Uint64("price"), caller)
}

func buyItems(c *cli.Context) error {
	contract, tokenId, err := itemArgs(c)
	if err != nil {
		return err
	}
	caller, err := helper.NormalizeAddress(c.String("caller"))
	if err != nil {
		return err
	}

	return market.BuyItems(contract, tokenId, caller, c.Uint64("paid"))
}

func withdrawProceeds(c *cli.Context) error {
	caller, err := helper.NormalizeAddress(c.String("caller"))
	if err != nil {
		return err
	}

	to := caller
	if c.String("to") != "" {
		to, err = helper.NormalizeAddress(c.String("to"))
		if err != nil {
			return err
		}
	}

	return market.WithdrawProceeds(caller, to)
}

func getListings(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("usage: listings <contract>")
	}
	contract, err := helper.NormalizeAddress(c.Args().Get(0))
	if err != nil {
		return err
	}

	listings, total, err := listingRepo.GetListingsByContract(contract, 100, 1)
	if err != nil {
		return err
	}

	zap.S().Infof("%d active listings", total)
	return printJson(listings)
}

func getProceeds(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("usage: proceeds <address>")
	}
	address, err := helper.NormalizeAddress(c.Args().Get(0))
	if err != nil {
		return err
	}

	fmt.Println(market.GetProceeds(address))
	return nil
}

func getActions(c *cli.Context) error {
	contract, tokenId, err := itemArgs(c)
	if err != nil {
		return err
	}

	actions, total, err := actionRepo.GetActions(contract, tokenId, 100, 1)
	if err != nil {
		return err
	}

	zap.S().Infof("%d actions", total)
	return printJson(actions)
}

func itemArgs(c *cli.Context) (string, uint64, error) {
	if c.Args().Len() != 2 {
		return "", 0, errors.New("expected <contract> <tokenId>")
	}

	contract, err := helper.NormalizeAddress(c.Args().Get(0))
	if err != nil {
		return "", 0, err
	}

	var tokenId uint64
	if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &tokenId); err != nil {
		return "", 0, errors.New("invalid token id")
	}

	return contract, tokenId, nil
}

func printJson(el interface{}) error {
	out, err := json.MarshalIndent(el, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
