package wallet

import (
	"context"
	"crypto/ecdsa"

	"github.com/abcfe/abcfe-wallet/common/crypto"
)

// AbcfeGenerator derives 0x-prefixed node addresses from P-256 keys.
type AbcfeGenerator struct {
	secrets SecretStore
}

func NewAbcfeGenerator(secrets SecretStore) *AbcfeGenerator {
	return &AbcfeGenerator{secrets: secrets}
}

func (g *AbcfeGenerator) Generate(ctx context.Context, source *Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &GenerationError{Cause: err}
	}

	privateKey, err := g.privateKey(source)
	if err != nil {
		return "", err
	}

	address := crypto.AddressTo0xPrefixString(crypto.PublicKeyToAddress(&privateKey.PublicKey))
	if err := storeSecret(g.secrets, address, crypto.PrivateKeyToHex(privateKey)); err != nil {
		return "", err
	}
	return address, nil
}

func (g *AbcfeGenerator) privateKey(source *Source) (*ecdsa.PrivateKey, error) {
	switch {
	case source == nil:
		privateKey, _, err := crypto.GenerateKeyPair()
		if err != nil {
			return nil, generationErr(err, "generate key pair")
		}
		return privateKey, nil

	case source.Kind == SourceSeed:
		seed, err := seedFromMnemonic(source.Secret)
		if err != nil {
			return nil, err
		}
		masterKey, err := crypto.DeriveMasterKey(seed)
		if err != nil {
			return nil, generationErr(err, "derive master key")
		}
		privateKey, _, err := crypto.DeriveAccountKey(masterKey, AccountPath(BIP44Index))
		if err != nil {
			return nil, generationErr(err, "derive account key")
		}
		return privateKey, nil

	case source.Kind == SourceKey:
		privateKey, err := crypto.HexToPrivateKey(source.Secret)
		if err != nil {
			return nil, generationErr(err, "invalid private key")
		}
		return privateKey, nil
	}
	return nil, &GenerationError{}
}
