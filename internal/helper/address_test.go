package helper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	t.Run("lowercases a base16 address", func(t *testing.T) {
		got, err := NormalizeAddress("0x8D329A47BF148C7D63D52B75FB2028ADC10A3D2F")
		require.NoError(t, err)
		assert.Equal(t, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f", got)
	})

	t.Run("adds the 0x prefix when missing", func(t *testing.T) {
		got, err := NormalizeAddress("8d329a47bf148c7d63d52b75fb2028adc10a3d2f")
		require.NoError(t, err)
		assert.Equal(t, "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f", got)
	})

	t.Run("rejects an invalid bech32 address", func(t *testing.T) {
		_, err := NormalizeAddress("zil1notavalidaddress")
		assert.Error(t, err)
	})
}

func TestGetBech32Address(t *testing.T) {
	base16 := "0x8d329a47bf148c7d63d52b75fb2028adc10a3d2f"

	bech32Address := GetBech32Address(base16)
	require.NotEmpty(t, bech32Address)
	assert.True(t, strings.HasPrefix(bech32Address, "zil1"))

	got, err := NormalizeAddress(bech32Address)
	require.NoError(t, err)
	assert.Equal(t, base16, got)

	assert.Empty(t, GetBech32Address(""))
}
