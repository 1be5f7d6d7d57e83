package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/abcfe/abcfe-wallet/common/utils"
	prt "github.com/abcfe/abcfe-wallet/protocol"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/crypto/scrypt"
)

const (
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

// ErrNotFound is returned by Get for an unknown address.
var ErrNotFound = errors.New("secret not found")

// record is the stored form of one secret.
type record struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeyStore keeps derived key material in leveldb, sealed with AES-GCM under
// a scrypt key from the configured passphrase.
type KeyStore struct {
	db         *leveldb.DB
	passphrase []byte
	scryptN    int
}

func New(db *leveldb.DB, passphrase string, scryptN int) *KeyStore {
	return &KeyStore{db: db, passphrase: []byte(passphrase), scryptN: scryptN}
}

func secretKey(address string) []byte {
	return []byte(prt.PrefixSecret + address)
}

// Put seals secret and stores it under address, replacing any previous value.
func (k *KeyStore) Put(address, secret string) error {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return errors.Wrap(err, "generate salt")
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Wrap(err, "generate nonce")
	}

	aesGCM, err := k.cipher(salt)
	if err != nil {
		return err
	}

	plaintext := []byte(secret)
	defer clear(plaintext)

	rec := record{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(aesGCM.Seal(nil, nonce, plaintext, nil)),
	}
	data, err := utils.SerializeData(rec)
	if err != nil {
		return err
	}
	if err := k.db.Put(secretKey(address), data, nil); err != nil {
		return errors.Wrap(err, "save secret")
	}
	return nil
}

// Get opens the secret stored under address.
func (k *KeyStore) Get(address string) (string, error) {
	data, err := k.db.Get(secretKey(address), nil)
	if err == leveldb.ErrNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "load secret")
	}

	var rec record
	if err := utils.DeserializeData(data, &rec); err != nil {
		return "", err
	}
	salt, err := base64.StdEncoding.DecodeString(rec.Salt)
	if err != nil {
		return "", errors.Wrap(err, "decode salt")
	}
	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return "", errors.Wrap(err, "decode nonce")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(rec.CipherText)
	if err != nil {
		return "", errors.Wrap(err, "decode ciphertext")
	}

	aesGCM, err := k.cipher(salt)
	if err != nil {
		return "", err
	}
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Wrap(err, "open secret (wrong passphrase?)")
	}
	return string(plaintext), nil
}

func (k *KeyStore) cipher(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(k.passphrase, salt, k.scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, errors.Wrap(err, "derive key")
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "create cipher")
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "create GCM")
	}
	return aesGCM, nil
}
