package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/abcfe/abcfe-wallet/internal/onboarding"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type memStore struct {
	mu      sync.Mutex
	wallets []wallet.Wallet
}

func (s *memStore) FetchAll(ctx context.Context) ([]wallet.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wallet.Wallet(nil), s.wallets...), nil
}

func (s *memStore) Append(ctx context.Context, w wallet.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = append(s.wallets, w)
	return nil
}

func newTestModel(store wallet.Store, clip string) Model {
	env := onboarding.Env{Generator: wallet.GeneratorFunc(func(ctx context.Context, source *wallet.Source) (string, error) {
		return "0x00000000000000000000000000000000000000aa", nil
	})}
	m := NewModel(Config{
		Controller: walletlist.New(store, env, nil, time.Second),
		Clipboard:  func() (string, error) { return clip, nil },
	})
	next, _ := m.Update(walletlist.FetchedMsg{})
	return next.(Model)
}

// collect runs cmd and returns its messages. Timers such as the cursor blink
// never resolve in time and are skipped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// deliver feeds msg to m and then every wallet-related result it produces.
func deliver(m Model, msg tea.Msg) Model {
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, out := range collect(cmd) {
		switch out.(type) {
		case onboarding.AddressDerived, onboarding.DerivationFailed,
			walletlist.AppendedMsg, walletlist.FetchedMsg, clipboardMsg:
			m = deliver(m, out)
		}
	}
	return m
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		m = deliver(m, k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter   = tea.KeyMsg{Type: tea.KeyEnter}
	space   = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	esc     = tea.KeyMsg{Type: tea.KeyEsc}
	down    = tea.KeyMsg{Type: tea.KeyDown}
	right   = tea.KeyMsg{Type: tea.KeyRight}
	paste   = tea.KeyMsg{Type: tea.KeyCtrlV}
	dismiss = tea.KeyMsg{Type: tea.KeyCtrlX}
)

func position(m Model) onboarding.Position {
	return m.list.Flow().Position()
}

func TestCreateWalletWithKeys(t *testing.T) {
	store := &memStore{}
	m := newTestModel(store, "")

	m = press(m, runes("a"))
	require.Equal(t, onboarding.PositionPrompt, position(m))

	m = press(m, runes("c"))
	require.Equal(t, onboarding.PositionName, position(m))

	// 이름 없이 계속은 막힘
	m = press(m, enter)
	require.Equal(t, onboarding.PositionName, position(m))

	m = press(m, runes("B"), runes("o"), runes("b"), enter)
	require.Equal(t, onboarding.PositionColor, position(m))

	m = press(m, right, space, enter)
	require.Equal(t, onboarding.PositionEmoji, position(m))

	m = press(m, space, enter)
	require.Equal(t, onboarding.PositionTerms, position(m))

	m = press(m, space, down, space, down, space)
	m = press(m, enter)
	require.Equal(t, onboarding.PositionTerms, position(m))
	m = press(m, down, space, enter)
	require.Equal(t, onboarding.PositionPresent, position(m))

	p := m.list.Flow().Current().(*onboarding.PresentStep)
	require.Equal(t, onboarding.PresentReady, p.State)
	assert.Contains(t, m.View(), "0x00000000000000000000000000000000000000aa")

	m = press(m, enter)
	assert.False(t, m.list.Flow().IsOpen())

	want := wallet.Wallet{
		Address: "0x00000000000000000000000000000000000000aa",
		Name:    "Bob",
		Color:   wallet.Palette[1].Colour,
		Emoji:   wallet.Emojis()[0],
	}
	assert.Equal(t, []wallet.Wallet{want}, m.list.Wallets())
	assert.Equal(t, []wallet.Wallet{want}, store.wallets)
	assert.Contains(t, m.View(), "Bob")
}

func TestImportPasteAndBack(t *testing.T) {
	m := newTestModel(&memStore{}, seedPhrase)

	m = press(m, runes("a"), runes("i"))
	require.Equal(t, onboarding.PositionMode, position(m))

	m = press(m, enter)
	require.Equal(t, onboarding.PositionSeed, position(m))

	m = press(m, paste)
	seed := m.list.Flow().Current().(*onboarding.SeedStep)
	assert.Equal(t, seedPhrase, seed.Phrase)
	assert.Equal(t, seedPhrase, m.credInput.Value())

	m = press(m, enter)
	require.Equal(t, onboarding.PositionName, position(m))

	// 이름 단계에서 취소하면 입력한 구문이 복원됨
	m = press(m, esc)
	require.Equal(t, onboarding.PositionSeed, position(m))
	assert.Equal(t, seedPhrase, m.credInput.Value())

	m = press(m, esc)
	require.Equal(t, onboarding.PositionMode, position(m))

	m = press(m, dismiss)
	assert.False(t, m.list.Flow().IsOpen())
	assert.Empty(t, m.list.Wallets())
}

func TestRejectedPasteShowsError(t *testing.T) {
	m := newTestModel(&memStore{}, "not a recovery phrase")

	m = press(m, runes("a"), runes("i"), enter, paste)
	seed := m.list.Flow().Current().(*onboarding.SeedStep)
	assert.True(t, seed.Rejected)
	assert.Empty(t, seed.Phrase)
	assert.Contains(t, m.View(), "✗")
}

func TestKeyModeUsesPasswordEcho(t *testing.T) {
	m := newTestModel(&memStore{}, "")

	m = press(m, runes("a"), runes("i"), down, enter)
	require.Equal(t, onboarding.PositionKey, position(m))

	m = press(m, runes("k"), runes("e"), runes("y"))
	assert.Equal(t, "key", m.list.Flow().Current().(*onboarding.KeyStep).Key)
	assert.Equal(t, textinput.EchoPassword, m.credInput.EchoMode)

	// 모드로 돌아가면 개인키가 선택된 상태
	m = press(m, esc)
	require.Equal(t, onboarding.PositionMode, position(m))
	assert.Equal(t, 1, m.cursor)
}

func TestMoveGrid(t *testing.T) {
	assert.Equal(t, 1, moveGrid(0, "right", 5, 20))
	assert.Equal(t, 0, moveGrid(0, "left", 5, 20))
	assert.Equal(t, 5, moveGrid(0, "down", 5, 20))
	assert.Equal(t, 17, moveGrid(17, "down", 5, 20))
	assert.Equal(t, 12, moveGrid(17, "up", 5, 20))
}
