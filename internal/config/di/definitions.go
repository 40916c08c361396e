package di

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mintduck/nft-marketplace/internal/api"
	"github.com/mintduck/nft-marketplace/internal/config"
	"github.com/mintduck/nft-marketplace/internal/elastic_search"
	"github.com/mintduck/nft-marketplace/internal/indexer"
	"github.com/mintduck/nft-marketplace/internal/marketplace"
	"github.com/mintduck/nft-marketplace/internal/messenger"
	"github.com/mintduck/nft-marketplace/internal/payments"
	"github.com/mintduck/nft-marketplace/internal/registry"
	"github.com/mintduck/nft-marketplace/internal/repository"
	"github.com/sarulabs/di/v2"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "registry",
		Build: func(ctn di.Container) (interface{}, error) {
			client, err := registry.NewClient(
				config.Get().Registry.Url,
				config.Get().Registry.Timeout,
				config.Get().Registry.Debug,
			)
			if err != nil {
				return nil, err
			}

			return registry.NewRegistryService(registry.NewProvider(client)), nil
		},
	},
	{
		Name: "payments",
		Build: func(ctn di.Container) (interface{}, error) {
			client := retryablehttp.NewClient()
			client.Logger = nil
			client.RetryMax = 3

			return payments.NewService(
				config.Get().Payments.GatewayUrl,
				config.Get().Payments.AccessKey,
				client,
			), nil
		},
	},
	{
		Name: "marketplace",
		Build: func(ctn di.Container) (interface{}, error) {
			return marketplace.NewMarketplace(
				ctn.Get("registry").(registry.Registry),
				ctn.Get("payments").(payments.Payer),
				config.Get().MarketplaceAddress,
			), nil
		},
	},
	{
		Name: "marketplace.indexer",
		Build: func(ctn di.Container) (interface{}, error) {
			return indexer.NewMarketplaceIndexer(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "listing.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewListingRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewMarketActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(), nil
		},
	},
	{
		Name: "messenger.publisher",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewPublisher(ctn.Get("messenger").(messenger.MessageService)), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("marketplace").(marketplace.Marketplace),
				ctn.Get("listing.repo").(repository.ListingRepository),
				ctn.Get("action.repo").(repository.MarketActionRepository),
			), nil
		},
	},
}

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetRegistry() registry.Registry {
	return c.ctn.Get("registry").(registry.Registry)
}

func (c *Container) GetPayments() payments.Payer {
	return c.ctn.Get("payments").(payments.Payer)
}

func (c *Container) GetMarketplace() marketplace.Marketplace {
	return c.ctn.Get("marketplace").(marketplace.Marketplace)
}

func (c *Container) GetMarketplaceIndexer() indexer.MarketplaceIndexer {
	return c.ctn.Get("marketplace.indexer").(indexer.MarketplaceIndexer)
}

func (c *Container) GetListingRepo() repository.ListingRepository {
	return c.ctn.Get("listing.repo").(repository.ListingRepository)
}

func (c *Container) GetActionRepo() repository.MarketActionRepository {
	return c.ctn.Get("action.repo").(repository.MarketActionRepository)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetPublisher() messenger.Publisher {
	return c.ctn.Get("messenger.publisher").(messenger.Publisher)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}
