package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/abcfe/abcfe-wallet/common/utils"
)

// PrivateKeyLen is the byte length of a P-256 private scalar.
const PrivateKeyLen = 32

func GenerateKeyPair() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return privateKey, &privateKey.PublicKey, nil
}

// Derive master key from seed (simple version)
func DeriveMasterKey(seed []byte) (*ecdsa.PrivateKey, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("empty seed")
	}
	hash := sha256.Sum256(seed)
	return scalarToPrivateKey(new(big.Int).SetBytes(hash[:]))
}

// Derive account key from path (simple version)
func DeriveAccountKey(masterKey *ecdsa.PrivateKey, path string) (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	// Hash path to create unique offset per account
	pathHash := sha256.Sum256([]byte(path))

	offset := new(big.Int).SetBytes(pathHash[:])
	newD := new(big.Int).Add(masterKey.D, offset)
	newD.Mod(newD, masterKey.PublicKey.Curve.Params().N)

	privateKey, err := scalarToPrivateKey(newD)
	if err != nil {
		return nil, nil, err
	}
	return privateKey, &privateKey.PublicKey, nil
}

// PrivateKeyToHex encodes the private scalar as 64 hex characters.
func PrivateKeyToHex(privateKey *ecdsa.PrivateKey) string {
	buf := make([]byte, PrivateKeyLen)
	privateKey.D.FillBytes(buf)
	return hex.EncodeToString(buf)
}

// HexToPrivateKey parses a hex private scalar, with or without 0x prefix.
func HexToPrivateKey(str string) (*ecdsa.PrivateKey, error) {
	raw, err := utils.DecodeHex(str)
	if err != nil {
		return nil, fmt.Errorf("private key is not hex: %w", err)
	}
	if len(raw) != PrivateKeyLen {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", PrivateKeyLen, len(raw))
	}
	return scalarToPrivateKey(new(big.Int).SetBytes(raw))
}

func scalarToPrivateKey(d *big.Int) (*ecdsa.PrivateKey, error) {
	curve := elliptic.P256()
	if d.Sign() <= 0 || d.Cmp(curve.Params().N) >= 0 {
		return nil, fmt.Errorf("private key out of range")
	}

	privateKey := new(ecdsa.PrivateKey)
	privateKey.PublicKey.Curve = curve
	privateKey.D = d
	privateKey.PublicKey.X, privateKey.PublicKey.Y = curve.ScalarBaseMult(d.Bytes())
	return privateKey, nil
}
