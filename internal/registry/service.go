package registry

// Registry is the external asset registry capability. Custody is never held
// by the marketplace; ownership, approval and transfer are all delegated to
// the registry.
type Registry interface {
	OwnerOf(contract string, tokenId uint64) (string, error)
	IsApprovedForMarketplace(contract string, tokenId uint64, marketplace string) (bool, error)
	Transfer(contract string, tokenId uint64, from, to string) error
}

type service struct {
	provider *Provider
}

func NewRegistryService(provider *Provider) Registry {
	return service{provider}
}

func (s service) OwnerOf(contract string, tokenId uint64) (string, error) {
	return s.provider.OwnerOf(contract, tokenId)
}

func (s service) IsApprovedForMarketplace(contract string, tokenId uint64, marketplace string) (bool, error) {
	return s.provider.GetApproved(contract, tokenId, marketplace)
}

func (s service) Transfer(contract string, tokenId uint64, from, to string) error {
	return s.provider.TransferFrom(contract, tokenId, from, to)
}
