package commands_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/branch"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)

func newActor(t *testing.T, role access.Role) access.Actor {
	t.Helper()
	a, err := access.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func usAddress(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.CountryUS, "Wilmington", "1 Market St", "19801", "Warehouse")
	require.NoError(t, err)
	return a
}

func geAddress(t *testing.T, recipient string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(kernel.CountryGE, "Tbilisi", "12 Rustaveli Ave", "0108", recipient)
	require.NoError(t, err)
	return a
}

func newItems(t *testing.T, weightGrams int) []order.Item {
	t.Helper()
	it, err := order.NewItem("sneakers", 1, weightGrams, order.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 12})
	require.NoError(t, err)
	return []order.Item{it}
}

func newGeorgianBranch(t *testing.T) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(kernel.NewUUID(), "Tbilisi Vake", kernel.CountryGE, geAddress(t, "Vake office"))
	require.NoError(t, err)
	return b
}

func newUSBranch(t *testing.T) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(kernel.NewUUID(), "Delaware Hub", kernel.CountryUS, usAddress(t))
	require.NoError(t, err)
	return b
}
