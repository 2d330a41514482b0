package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"problem-hunt-api/internal/model"
	"problem-hunt-api/internal/store"
	"problem-hunt-api/pkg/apierror"
)

var (
	validChains = map[string]struct{}{
		"ethereum": {},
		"polygon":  {},
		"arbitrum": {},
		"solana":   {},
	}

	evmAddress = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
)

type WalletService struct {
	store store.Store
}

func NewWalletService(st store.Store) *WalletService {
	return &WalletService{store: st}
}

func (s *WalletService) List(ctx context.Context, userID string) (*model.WalletList, error) {
	wallets, err := s.queryWallets(ctx, store.Filter{"userId": userID})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].CreatedAt < wallets[j].CreatedAt
	})

	return &model.WalletList{Wallets: wallets}, nil
}

// Add links a wallet address to the caller, replacing any wallet the
// caller already has on the same chain.
func (s *WalletService) Add(ctx context.Context, userID string, req model.AddWalletRequest) (*model.Wallet, error) {
	chain := strings.ToLower(strings.TrimSpace(req.Chain))
	if _, ok := validChains[chain]; !ok {
		return nil, apierror.BadRequest("chain must be one of: arbitrum, ethereum, polygon, solana")
	}

	address := strings.TrimSpace(req.Address)
	if err := validateAddress(chain, address); err != nil {
		return nil, err
	}

	// An address may be linked to at most one account across all chains.
	existing, err := s.queryWallets(ctx, store.Filter{"address": address})
	if err != nil {
		return nil, err
	}
	for _, wallet := range existing {
		if wallet.UserID != userID {
			return nil, apierror.Conflict("this address is already linked to another account")
		}
	}

	// One wallet per (user, chain): drop the previous one first.
	current, err := s.queryWallets(ctx, store.Filter{"userId": userID, "chain": chain})
	if err != nil {
		return nil, err
	}
	for _, wallet := range current {
		if err := s.store.Delete(ctx, store.CollectionWallets, wallet.ID, userID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
	}

	wallet := &model.Wallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Chain:     chain,
		Address:   address,
		IsPrimary: true,
		CreatedAt: nowStamp(),
	}

	if err := s.store.Create(ctx, store.CollectionWallets, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

// Delete is owner-scoped: a wallet belonging to someone else looks the
// same as a missing one, so nothing leaks across accounts.
func (s *WalletService) Delete(ctx context.Context, userID string, walletID string) error {
	_, err := s.store.Get(ctx, store.CollectionWallets, walletID, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NotFound("wallet not found")
	}
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, store.CollectionWallets, walletID, userID)
}

func (s *WalletService) queryWallets(ctx context.Context, filter store.Filter) ([]model.Wallet, error) {
	docs, err := s.store.Query(ctx, store.CollectionWallets, filter)
	if err != nil {
		return nil, err
	}

	wallets := make([]model.Wallet, 0, len(docs))
	for _, doc := range docs {
		var wallet model.Wallet
		if err := json.Unmarshal(doc, &wallet); err != nil {
			return nil, fmt.Errorf("decode wallet: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}

func validateAddress(chain string, address string) error {
	if address == "" {
		return apierror.BadRequest("address is required")
	}

	switch chain {
	case "ethereum", "polygon", "arbitrum":
		if !evmAddress.MatchString(address) {
			return apierror.BadRequest("EVM address must be 0x followed by 40 hex characters")
		}
	case "solana":
		if len(address) < 32 || len(address) > 44 {
			return apierror.BadRequest("Solana address must be 32-44 characters")
		}
	}
	return nil
}
