package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
)

const (
	evmAddr1 = "0xa1b2c3d4e5f6a7b8c9d0a1b2c3d4e5f6a7b8c9d0"
	evmAddr2 = "0xA1B2C3D4E5F6A7B8C9D0A1B2C3D4E5F6A7B8C9D1"
)

func TestWalletService_AddValidation(t *testing.T) {
	svc := NewWalletService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "dogecoin", Address: evmAddr1})
	assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "chain must be one of")

	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "ethereum", Address: ""})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "ethereum", Address: "0xshort"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "solana", Address: "tooshort"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "solana", Address: strings.Repeat("A", 45)})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestWalletService_AddNormalizesChain(t *testing.T) {
	svc := NewWalletService(store.NewMemory())

	wallet, err := svc.Add(context.Background(), "u1", model.AddWalletRequest{
		Chain:   "  Ethereum ",
		Address: evmAddr1,
	})
	require.NoError(t, err)
	assert.Equal(t, "ethereum", wallet.Chain)
	assert.True(t, wallet.IsPrimary)
}

func TestWalletService_OneWalletPerChain(t *testing.T) {
	svc := NewWalletService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "polygon", Address: evmAddr1})
	require.NoError(t, err)

	// Second wallet on the same chain replaces the first.
	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "polygon", Address: evmAddr2})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list.Wallets, 1)
	assert.Equal(t, evmAddr2, list.Wallets[0].Address)

	// A different chain is a second slot, not a replacement.
	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "solana", Address: strings.Repeat("B", 40)})
	require.NoError(t, err)

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list.Wallets, 2)
}

func TestWalletService_AddressBoundToOneAccount(t *testing.T) {
	svc := NewWalletService(store.NewMemory())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "ethereum", Address: evmAddr1})
	require.NoError(t, err)

	_, err = svc.Add(ctx, "u2", model.AddWalletRequest{Chain: "arbitrum", Address: evmAddr1})
	assertStatus(t, err, http.StatusConflict)

	// The owner may re-link their own address on another chain.
	_, err = svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "arbitrum", Address: evmAddr1})
	require.NoError(t, err)
}

func TestWalletService_DeleteScopedToOwner(t *testing.T) {
	svc := NewWalletService(store.NewMemory())
	ctx := context.Background()

	wallet, err := svc.Add(ctx, "u1", model.AddWalletRequest{Chain: "ethereum", Address: evmAddr1})
	require.NoError(t, err)

	// Someone else's wallet is indistinguishable from a missing one.
	err = svc.Delete(ctx, "u2", wallet.ID)
	assertStatus(t, err, http.StatusNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", wallet.ID))

	err = svc.Delete(ctx, "u1", wallet.ID)
	assertStatus(t, err, http.StatusNotFound)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list.Wallets)
}
