package registry

import (
	"encoding/json"
	"strings"
)

type Provider struct {
	rpcClient *rpcClient
}

func NewProvider(rpcClient *rpcClient) *Provider {
	return &Provider{rpcClient: rpcClient}
}

func (p *Provider) OwnerOf(contract string, tokenId uint64) (string, error) {
	response, err := p.call("OwnerOf", contract, tokenId)
	if err != nil {
		return "", err
	}

	var owner string
	if err := json.Unmarshal(response.Result, &owner); err != nil {
		return "", err
	}

	return strings.ToLower(owner), nil
}

func (p *Provider) GetApproved(contract string, tokenId uint64, operator string) (bool, error) {
	response, err := p.call("GetApproved", contract, tokenId, operator)
	if err != nil {
		return false, err
	}

	var approved bool
	if err := json.Unmarshal(response.Result, &approved); err != nil {
		return false, err
	}

	return approved, nil
}

func (p *Provider) TransferFrom(contract string, tokenId uint64, from, to string) error {
	_, err := p.call("TransferFrom", contract, tokenId, from, to)
	return err
}

func (p *Provider) call(method string, params ...interface{}) (*rpcResponse, error) {
	response, err := p.rpcClient.call(method, params)
	if err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, *response.Error
	}

	return response, nil
}
