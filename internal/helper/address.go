package helper

import (
	"strings"

	"github.com/Zilliqa/gozilliqa-sdk/bech32"
	"go.uber.org/zap"
)

// NormalizeAddress accepts a bech32 or base16 address and returns the
// lowercase base16 form used as identity throughout the engine.
func NormalizeAddress(address string) (string, error) {
	if strings.HasPrefix(address, "zil1") {
		base16, err := bech32.FromBech32Addr(address)
		if err != nil {
			zap.L().With(zap.Error(err), zap.String("address", address)).Error("Failed to decode bech32 address")
			return "", err
		}
		address = base16
	}

	address = strings.ToLower(address)
	if !strings.HasPrefix(address, "0x") {
		address = "0x" + address
	}

	return address, nil
}

func GetBech32Address(address string) string {
	if address == "" {
		return ""
	}
	bech32Address, err := bech32.ToBech32Address(address)
	if err != nil {
		zap.L().With(zap.Error(err), zap.String("address", address)).Error("Failed to create bech32 address")
		return ""
	}
	return bech32Address
}
