package wallet

import (
	"fmt"
	"math"
)

// SourceKind tells which credential an imported wallet comes from.
type SourceKind int

const (
	SourceSeed SourceKind = iota + 1
	SourceKey
)

// Source is the credential a wallet is derived from. A nil *Source means the
// key is generated by the system.
type Source struct {
	Kind   SourceKind
	Secret string
}

func Seed(phrase string) *Source {
	return &Source{Kind: SourceSeed, Secret: phrase}
}

func PrivateKey(key string) *Source {
	return &Source{Kind: SourceKey, Secret: key}
}

// String never includes the secret.
func (s *Source) String() string {
	switch {
	case s == nil:
		return "none"
	case s.Kind == SourceSeed:
		return "seed"
	case s.Kind == SourceKey:
		return "key"
	default:
		return "unknown"
	}
}

// Colour is an RGBA colour with components in [0, 1].
type Colour struct {
	Red     float64 `json:"red"`
	Green   float64 `json:"green"`
	Blue    float64 `json:"blue"`
	Opacity float64 `json:"opacity"`
}

func RGB(r, g, b float64) Colour {
	return Colour{Red: r, Green: g, Blue: b, Opacity: 1}
}

// Hex returns the colour as #rrggbb, ignoring opacity.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.Red), channel(c.Green), channel(c.Blue))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Wallet is a completed, persisted wallet record. The address identifies it.
type Wallet struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Color   Colour `json:"color"`
	Emoji   string `json:"emoji"`
}

func (w Wallet) ID() string {
	return w.Address
}

// BIP-44 path constants
const (
	BIP44Purpose  = 44
	BIP44CoinType = 60
	BIP44Account  = 0
	BIP44Change   = 0 // External
	BIP44Index    = 0
)

// AccountPath returns the BIP-44 path for the given account index.
func AccountPath(index int) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", BIP44Purpose, BIP44CoinType, BIP44Account, BIP44Change, index)
}
