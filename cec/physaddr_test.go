//go:build linux

package cec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicalAddressString(t *testing.T) {
	assert.Equal(t, "0.0.0.0", PhysicalAddress(0).String())
	assert.Equal(t, "1.0.0.0", PhysicalAddress(0x1000).String())
	assert.Equal(t, "3.2.0.0", PhysicalAddress(0x3200).String())
	assert.Equal(t, "15.15.15.15", InvalidPhysicalAddress.String())
}

func TestParsePhysicalAddress(t *testing.T) {
	pa, err := ParsePhysicalAddress("2.1.0.0")
	require.NoError(t, err)
	assert.Equal(t, PhysicalAddress(0x2100), pa)

	_, err = ParsePhysicalAddress("2.1.0")
	assert.Error(t, err)
	_, err = ParsePhysicalAddress("16.0.0.0")
	assert.Error(t, err)
}

func TestPhysicalAddressPort(t *testing.T) {
	assert.Equal(t, uint8(3), PhysicalAddress(0x3200).Port())
	assert.Equal(t, uint8(0), PhysicalAddress(0).Port())
}

func TestPhysicalAddressBytes(t *testing.T) {
	b := PhysicalAddress(0x1234).Bytes()
	assert.Equal(t, [2]byte{0x12, 0x34}, b)
	assert.Equal(t, PhysicalAddress(0x1234), PhysicalAddressFromBytes(b[0], b[1]))
}
