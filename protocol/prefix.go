package protocol

const (
	// Wallet list (single record holding the ordered wallet sequence)
	PrefixWallets = "wallets:all"

	// Secret related prefixes
	PrefixSecret = "secret:" // secret:Address = Encrypted key material
)
