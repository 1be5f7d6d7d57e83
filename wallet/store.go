package wallet

import "context"

// Store persists the ordered list of completed wallets. Append only.
type Store interface {
	FetchAll(ctx context.Context) ([]Wallet, error)
	Append(ctx context.Context, w Wallet) error
}

// SecretStore keeps the key material behind a derived address.
type SecretStore interface {
	Put(address, secret string) error
}
