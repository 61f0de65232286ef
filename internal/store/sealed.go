package store

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/cmsadmin/pkg/cryptox"
)

// Sealed encrypts values before they reach the wrapped store. Values written
// before sealing was enabled are still readable.
type Sealed struct {
	Store
	sealer *cryptox.Sealer
}

// Seal wraps inner so every value is encrypted with a key derived from
// passphrase and the driver's salt. inner must implement Salter.
func Seal(ctx context.Context, inner Store, passphrase string) (*Sealed, error) {
	salter, ok := inner.(Salter)
	if !ok {
		return nil, ErrSealingUnsupported
	}

	salt, err := salter.Salt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load salt: %w", err)
	}

	sealer, err := cryptox.NewSealer(passphrase, salt)
	if err != nil {
		return nil, err
	}
	return &Sealed{Store: inner, sealer: sealer}, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, error) {
	v, err := s.Store.Get(ctx, key)
	if err != nil || v == "" {
		return v, err
	}

	plain, err := s.sealer.OpenString(v)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", key, err)
	}
	return plain, nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	sealed, err := s.sealer.SealString(value)
	if err != nil {
		return fmt.Errorf("failed to seal %q: %w", key, err)
	}
	return s.Store.Set(ctx, key, sealed)
}
