package walletlist

import (
	"context"
	"time"

	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/internal/onboarding"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/asaskevich/EventBus"
	tea "github.com/charmbracelet/bubbletea"
)

// Bus topics published after a persist call resolves.
const (
	TopicAppended     = "wallets:appended"
	TopicAppendFailed = "wallets:append_failed"
)

// FetchedMsg resolves the fetch-all issued by Init. At is when the read began.
type FetchedMsg struct {
	Wallets []wallet.Wallet
	Err     error
	At      time.Time
}

// AppendedMsg resolves one persist call. Seq is the wallet's position among
// the wallets finished this session; At is when the append returned.
type AppendedMsg struct {
	Wallet wallet.Wallet
	Seq    int
	Err    error
	At     time.Time
}

// sessionWallet is a wallet finished since start. stored stays zero until
// its append succeeds.
type sessionWallet struct {
	wallet wallet.Wallet
	stored time.Time
}

// Controller owns the committed wallet list and the add-wallet wizard.
type Controller struct {
	store   wallet.Store
	env     onboarding.Env
	bus     EventBus.Bus
	timeout time.Duration

	flow *onboarding.AddWalletFlow

	wallets []wallet.Wallet
	// session holds wallets finished since start, in order.
	session        []sessionWallet
	fetched        bool
	fetchedAt      time.Time
	fetchedWallets []wallet.Wallet
	lastErr        error
}

// New builds a controller. bus may be nil.
func New(store wallet.Store, env onboarding.Env, bus EventBus.Bus, timeout time.Duration) *Controller {
	return &Controller{
		store:   store,
		env:     env,
		bus:     bus,
		timeout: timeout,
		flow:    onboarding.NewAddWalletFlow(env),
	}
}

// Init issues the one fetch-all call.
func (c *Controller) Init() tea.Cmd {
	store, timeout := c.store, c.timeout
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		at := time.Now()
		wallets, err := store.FetchAll(ctx)
		return FetchedMsg{Wallets: wallets, Err: err, At: at}
	}
}

// StartOnboarding opens a fresh wizard unless one is already open.
func (c *Controller) StartOnboarding() {
	if c.flow.IsOpen() {
		return
	}
	c.flow = onboarding.NewAddWalletFlow(c.env)
	c.flow.Open()
	logger.Debug("onboarding started")
}

func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		c.onFetched(msg)
		return nil
	case AppendedMsg:
		c.onAppended(msg)
		return nil
	case onboarding.Open:
		c.StartOnboarding()
		return nil
	}

	if !c.flow.IsOpen() {
		return nil
	}
	sig, cmd := c.flow.Update(msg)
	if f, ok := sig.(onboarding.Finished); ok {
		return tea.Batch(cmd, c.commit(f.Wallet))
	}
	return cmd
}

func (c *Controller) commit(w wallet.Wallet) tea.Cmd {
	c.session = append(c.session, sessionWallet{wallet: w})
	c.refresh()
	logger.Info("wallet added: ", w.Name, " ", w.Address)

	seq, store, timeout := len(c.session)-1, c.store, c.timeout
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		err := store.Append(ctx, w)
		return AppendedMsg{Wallet: w, Seq: seq, Err: err, At: time.Now()}
	}
}

func (c *Controller) onFetched(msg FetchedMsg) {
	if msg.Err != nil {
		// an unreadable store reads as an empty list
		logger.Warn("fetch wallets: ", msg.Err)
		msg.Wallets = nil
	}
	c.fetched = true
	c.fetchedAt = msg.At
	c.fetchedWallets = msg.Wallets
	c.refresh()
}

func (c *Controller) onAppended(msg AppendedMsg) {
	if msg.Err != nil {
		logger.Error("persist wallet ", msg.Wallet.Address, ": ", msg.Err)
		c.lastErr = msg.Err
		c.publish(TopicAppendFailed, msg.Wallet, msg.Err)
		return
	}
	c.lastErr = nil
	if msg.Seq >= 0 && msg.Seq < len(c.session) {
		c.session[msg.Seq].stored = msg.At
		c.refresh()
	}
	c.publish(TopicAppended, msg.Wallet)
}

// refresh rebuilds the visible list from the fetched wallets and the session.
// A session wallet is only matched against the fetched copy when its append
// returned before the fetch began reading.
func (c *Controller) refresh() {
	finished := make([]wallet.Wallet, len(c.session))
	var persisted []wallet.Wallet
	for i, sw := range c.session {
		finished[i] = sw.wallet
		if c.fetched && !sw.stored.IsZero() && sw.stored.Before(c.fetchedAt) {
			persisted = append(persisted, sw.wallet)
		}
	}
	c.wallets = merge(c.fetchedWallets, persisted, finished)
}

func (c *Controller) publish(topic string, args ...interface{}) {
	if c.bus != nil {
		c.bus.Publish(topic, args...)
	}
}

// merge puts the fetched wallets first and the session wallets after them.
// Each persisted session wallet shows up in fetched too, so the last equal
// fetched entry is dropped per persisted wallet.
func merge(fetched, persisted, session []wallet.Wallet) []wallet.Wallet {
	pending := make(map[wallet.Wallet]int, len(persisted))
	for _, w := range persisted {
		pending[w]++
	}

	keep := make([]bool, len(fetched))
	n := 0
	for i := len(fetched) - 1; i >= 0; i-- {
		if pending[fetched[i]] > 0 {
			pending[fetched[i]]--
			continue
		}
		keep[i] = true
		n++
	}

	out := make([]wallet.Wallet, 0, n+len(session))
	for i, w := range fetched {
		if keep[i] {
			out = append(out, w)
		}
	}
	return append(out, session...)
}

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}

func (c *Controller) Wallets() []wallet.Wallet {
	return append([]wallet.Wallet(nil), c.wallets...)
}

func (c *Controller) Flow() *onboarding.AddWalletFlow { return c.flow }

// Fetched reports whether the initial fetch has resolved.
func (c *Controller) Fetched() bool { return c.fetched }

// LastErr is the error of the latest failed persist call, cleared by the next
// successful one.
func (c *Controller) LastErr() error { return c.lastErr }
