package rest

import (
	"net/http"

	"github.com/abcfe/abcfe-wallet/api"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/gorilla/mux"
)

func setupRouter(store wallet.Store, notices *walletlist.Notices, wsHub *api.WSHub) http.Handler {
	r := mux.NewRouter()

	// Middleware setup
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	// Base route
	r.HandleFunc("/", HomeHandler).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", api.HandleWebSocket(wsHub))

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/status", GetStatus(store, notices)).Methods("GET")

	// Wallet related API
	apiRouter.HandleFunc("/wallets", GetWallets(store)).Methods("GET")
	apiRouter.HandleFunc("/wallets/{address}", GetWallet(store)).Methods("GET")

	// WebSocket status API
	apiRouter.HandleFunc("/ws/status", GetWSStatus(wsHub)).Methods("GET")

	return r
}
