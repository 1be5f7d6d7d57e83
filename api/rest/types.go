package rest

import "github.com/abcfe/abcfe-wallet/wallet"

// General response structure
type RestResp struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Wallet response
type WalletResp struct {
	Address string  `json:"address"`
	Name    string  `json:"name"`
	Color   string  `json:"color"` // #rrggbb
	Opacity float64 `json:"opacity"`
	Emoji   string  `json:"emoji"`
}

// Status response
type StatusResp struct {
	WalletCount  int    `json:"walletCount"`
	Appended     int    `json:"appended"`
	AppendFailed int    `json:"appendFailed"`
	LastFailure  string `json:"lastFailure,omitempty"`
}

func formatWalletResp(w wallet.Wallet) WalletResp {
	return WalletResp{
		Address: w.Address,
		Name:    w.Name,
		Color:   w.Color.Hex(),
		Opacity: w.Color.Opacity,
		Emoji:   w.Emoji,
	}
}
