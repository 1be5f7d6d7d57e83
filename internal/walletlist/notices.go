package walletlist

import (
	"sync"

	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/asaskevich/EventBus"
)

// NoticeStats counts persist notices seen on the bus.
type NoticeStats struct {
	Appended     int    `json:"appended"`
	AppendFailed int    `json:"appendFailed"`
	LastFailure  string `json:"lastFailure,omitempty"`
}

// Notices subscribes to the controller's topics and keeps running counts.
// Handlers may run on any goroutine.
type Notices struct {
	mu    sync.Mutex
	stats NoticeStats
}

func NewNotices() *Notices {
	return &Notices{}
}

// Subscribe registers the handlers on bus.
func (n *Notices) Subscribe(bus EventBus.Bus) error {
	if err := bus.Subscribe(TopicAppended, n.onAppended); err != nil {
		return err
	}
	return bus.Subscribe(TopicAppendFailed, n.onAppendFailed)
}

func (n *Notices) onAppended(w wallet.Wallet) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stats.Appended++
}

func (n *Notices) onAppendFailed(w wallet.Wallet, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stats.AppendFailed++
	n.stats.LastFailure = w.Address + ": " + err.Error()
}

func (n *Notices) Stats() NoticeStats {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stats
}
