package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/abcfe/abcfe-wallet/api"
	"github.com/abcfe/abcfe-wallet/common/utils"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/gorilla/mux"
)

// get home response
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	info := map[string]string{
		"name":    "ABCFE Wallets API",
		"version": "1.0.0",
	}
	sendResp(w, http.StatusOK, info, nil)
}

// GetStatus 지갑 수와 저장 알림 통계
func GetStatus(store wallet.Store, notices *walletlist.Notices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallets, err := store.FetchAll(r.Context())
		if err != nil {
			sendResp(w, http.StatusInternalServerError, nil, err)
			return
		}

		resp := StatusResp{WalletCount: len(wallets)}
		if notices != nil {
			stats := notices.Stats()
			resp.Appended = stats.Appended
			resp.AppendFailed = stats.AppendFailed
			resp.LastFailure = stats.LastFailure
		}
		sendResp(w, http.StatusOK, resp, nil)
	}
}

// GetWallets 저장된 지갑 목록 (저장 순서)
func GetWallets(store wallet.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wallets, err := store.FetchAll(r.Context())
		if err != nil {
			sendResp(w, http.StatusInternalServerError, nil, err)
			return
		}

		result := make([]WalletResp, len(wallets))
		for i, wl := range wallets {
			result[i] = formatWalletResp(wl)
		}
		sendResp(w, http.StatusOK, result, nil)
	}
}

// GetWallet 주소로 지갑 조회. 같은 주소가 여럿이면 먼저 저장된 것
// 0x 주소는 대소문자와 접두사 없이도 조회
func GetWallet(store wallet.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := mux.Vars(r)["address"]

		wallets, err := store.FetchAll(r.Context())
		if err != nil {
			sendResp(w, http.StatusInternalServerError, nil, err)
			return
		}

		for _, wl := range wallets {
			if sameAddress(wl.Address, address) {
				sendResp(w, http.StatusOK, formatWalletResp(wl), nil)
				return
			}
		}
		sendResp(w, http.StatusNotFound, nil, fmt.Errorf("wallet not found: %s", address))
	}
}

// sameAddress compares node addresses as bytes, so case and the 0x prefix do
// not matter. Other formats compare as text.
func sameAddress(a, b string) bool {
	if a == b {
		return true
	}
	x, err := utils.StringToAddress(a)
	if err != nil {
		return false
	}
	y, err := utils.StringToAddress(b)
	if err != nil {
		return false
	}
	return x == y
}

// GetWSStatus WebSocket 접속 수
func GetWSStatus(hub *api.WSHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendResp(w, http.StatusOK, map[string]interface{}{
			"connectedClients": hub.GetClientCount(),
		}, nil)
	}
}

// send response
func sendResp(w http.ResponseWriter, statusCode int, data interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := RestResp{
		Success: err == nil,
		Data:    data,
	}

	if err != nil {
		response.Error = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
