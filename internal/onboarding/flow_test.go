package onboarding

import (
	"context"
	"sync"
	"testing"

	"github.com/abcfe/abcfe-wallet/wallet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain runs cmd inline and flattens batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed sends msg and every message its commands produce, returning the last
// signal seen.
func feed(f *AddWalletFlow, msg tea.Msg) Signal {
	sig, cmd := f.Update(msg)
	for _, m := range drain(cmd) {
		if s := feed(f, m); s != nil {
			sig = s
		}
	}
	return sig
}

// fakeGenerator records every call.
type fakeGenerator struct {
	mu      sync.Mutex
	address string
	err     error
	sources []*wallet.Source
}

func (g *fakeGenerator) Generate(ctx context.Context, source *wallet.Source) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sources = append(g.sources, source)
	if g.err != nil {
		return "", g.err
	}
	return g.address, nil
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sources)
}

func colour(t *testing.T, name string) wallet.Colour {
	c, ok := wallet.ColourByName(name)
	require.True(t, ok, name)
	return c
}

func acceptAll(f *AddWalletFlow) {
	for _, term := range AllTerms {
		feed(f, SetTerm{Term: term, Accepted: true})
	}
}

func TestCreateFlowBackRestoresDraft(t *testing.T) {
	blue := colour(t, "blue")
	f := NewCreateFlow(nil)

	f.Update(EditName{Name: "My Wallet"})
	f.Update(Continue{})
	require.Equal(t, PositionColor, f.Position())
	f.Update(SelectColor{Color: blue})
	f.Update(Continue{})
	f.Update(SelectEmoji{Emoji: "🙂"})
	f.Update(Continue{})
	require.Equal(t, PositionTerms, f.Position())

	f.Update(Back{})
	require.Equal(t, PositionEmoji, f.Position())
	assert.Equal(t, "🙂", f.Current().(*EmojiStep).Emoji)

	f.Update(Back{})
	require.Equal(t, PositionColor, f.Position())
	require.NotNil(t, f.Current().(*ColorStep).Color)
	assert.Equal(t, blue, *f.Current().(*ColorStep).Color)

	f.Update(Back{})
	require.Equal(t, PositionName, f.Position())
	assert.Equal(t, "My Wallet", f.Current().(*NameStep).Name)

	// 수정 없이 다시 진행하면 같은 값
	f.Update(Continue{})
	f.Update(Continue{})
	f.Update(Continue{})
	require.Equal(t, PositionTerms, f.Position())
	d := f.Draft()
	assert.Equal(t, "My Wallet", d.Name)
	assert.Equal(t, blue, *d.Color)
	assert.Equal(t, "🙂", d.Emoji)
	assert.False(t, d.Terms.Accepted())
}

func TestCreateFlowBlockedContinue(t *testing.T) {
	f := NewCreateFlow(nil)
	assert.Nil(t, f.Update(Continue{}))
	assert.Equal(t, PositionName, f.Position())

	f.Update(EditName{Name: "w"})
	f.Update(Continue{})
	f.Update(Continue{})
	assert.Equal(t, PositionColor, f.Position())

	// Cancel은 Name 단계에서만
	assert.Nil(t, f.Update(Cancel{}))
	assert.Equal(t, PositionColor, f.Position())
}

func TestCreateFlowCompletesWithDraft(t *testing.T) {
	src := wallet.Seed(twelveWords)
	f := NewCreateFlow(src)
	f.Update(EditName{Name: "Imported"})
	f.Update(Continue{})
	f.Update(SelectColor{Color: colour(t, "red")})
	f.Update(Continue{})
	f.Update(SelectEmoji{Emoji: "💰"})
	f.Update(Continue{})
	for _, term := range AllTerms {
		assert.Nil(t, f.Update(Continue{}))
		f.Update(SetTerm{Term: term, Accepted: true})
	}

	sig := f.Update(Continue{})
	done, ok := sig.(Completed)
	require.True(t, ok)
	assert.Same(t, src, done.Draft.Source)
	assert.Equal(t, "Imported", done.Draft.Name)
	assert.Equal(t, "💰", done.Draft.Emoji)
	assert.True(t, done.Draft.Terms.Accepted())
}

func TestCreateFlowCancelCarriesSource(t *testing.T) {
	src := wallet.PrivateKey("key")
	f := NewCreateFlow(src)
	f.Update(EditName{Name: "edited"})

	sig := f.Update(Cancel{})
	c, ok := sig.(Cancelled)
	require.True(t, ok)
	assert.Same(t, src, c.Source)
}

func TestPresentIssuesOneDerivation(t *testing.T) {
	gen := &fakeGenerator{address: "GABC"}
	env := Env{Generator: gen}
	p := newPresentStep(Draft{Name: "w", Emoji: "🙂"})

	msgs := drain(p.Start(env))
	require.Len(t, msgs, 1)
	assert.Nil(t, p.Start(env))

	p.Update(msgs[0])
	assert.Equal(t, PresentReady, p.State)
	assert.Equal(t, "GABC", p.Address)

	// 이미 Ready인 인스턴스는 다시 호출하지 않음
	assert.Nil(t, p.Start(env))
	assert.Equal(t, 1, gen.calls())
}

func TestPresentIgnoresOtherInstance(t *testing.T) {
	p := newPresentStep(Draft{})
	other := newPresentStep(Draft{})

	p.Update(AddressDerived{Instance: other.Instance(), Address: "stale"})
	assert.Equal(t, PresentDeriving, p.State)
	assert.Empty(t, p.Address)

	p.Update(DerivationFailed{Instance: other.Instance(), Err: errors.New("stale")})
	assert.Equal(t, PresentDeriving, p.State)

	// Ready 이전에는 Finish 불가
	assert.Nil(t, p.Update(Finish{}))
	assert.False(t, p.CanContinue())
}

func TestPresentFinishOnce(t *testing.T) {
	red := colour(t, "red")
	p := newPresentStep(Draft{Name: "n", Color: &red, Emoji: "💰"})
	p.Update(AddressDerived{Instance: p.Instance(), Address: "addr"})

	sig := p.Update(Finish{})
	fin, ok := sig.(Finished)
	require.True(t, ok)
	assert.Equal(t, wallet.Wallet{Address: "addr", Name: "n", Color: red, Emoji: "💰"}, fin.Wallet)
	assert.Nil(t, p.Update(Finish{}))
}

func TestImportSeedCancelRestoresPhrase(t *testing.T) {
	f := NewImportFlow(Env{Generator: &fakeGenerator{}})
	f.Update(ChooseMode{Mode: ModeSeed})
	require.Equal(t, PositionSeed, f.Position())
	f.Update(EditCredential{Text: twelveWords})
	f.Update(Continue{})
	require.Equal(t, PositionName, f.Position())

	f.Update(EditName{Name: "draft name"})
	sig, _ := f.Update(Cancel{})
	assert.Nil(t, sig)

	require.Equal(t, PositionSeed, f.Position())
	assert.Equal(t, twelveWords, f.Current().(*SeedStep).Phrase)
}

func TestImportKeyCancelRestoresKey(t *testing.T) {
	f := NewImportFlow(Env{Generator: &fakeGenerator{}})
	f.Update(ChooseMode{Mode: ModeKey})
	f.Update(PasteCredential{Text: "deadbeef"})
	f.Update(Continue{})
	require.Equal(t, PositionName, f.Position())

	f.Update(Cancel{})
	require.Equal(t, PositionKey, f.Position())
	assert.Equal(t, "deadbeef", f.Current().(*KeyStep).Key)

	// Key 취소 → Mode (이전 선택 유지)
	f.Update(Cancel{})
	require.Equal(t, PositionMode, f.Position())
	assert.Equal(t, ModeKey, f.Current().(*ModeStep).Mode)

	sig, _ := f.Update(Cancel{})
	assert.Equal(t, Cancelled{}, sig)
}

func TestImportRejectedPasteClearsOnNextMessage(t *testing.T) {
	f := NewImportFlow(Env{Generator: &fakeGenerator{}})
	f.Update(ChooseMode{Mode: ModeSeed})
	f.Update(PasteCredential{Text: "Not Valid"})

	s := f.Current().(*SeedStep)
	assert.True(t, s.Rejected)
	assert.Empty(t, s.Phrase)

	f.Update(EditCredential{Text: "abandon"})
	assert.False(t, s.Rejected)
	assert.Equal(t, "abandon", s.Phrase)
}

// 시나리오 A: 새 지갑 생성
func TestScenarioCreate(t *testing.T) {
	gen := &fakeGenerator{address: "GABC..."}
	f := NewAddWalletFlow(Env{Generator: gen})
	f.Open()
	require.Equal(t, PositionPrompt, f.Position())

	feed(f, ChooseCreate{})
	feed(f, EditName{Name: "My Wallet"})
	feed(f, Continue{})
	feed(f, SelectColor{Color: colour(t, "blue")})
	feed(f, Continue{})
	feed(f, SelectEmoji{Emoji: "🙂"})
	feed(f, Continue{})
	acceptAll(f)
	require.Nil(t, feed(f, Continue{}))

	require.Equal(t, PositionPresent, f.Position())
	require.Equal(t, PresentReady, f.Current().(*PresentStep).State)
	require.Equal(t, 1, gen.calls())
	assert.Nil(t, gen.sources[0])

	sig := feed(f, Finish{})
	fin, ok := sig.(Finished)
	require.True(t, ok)
	assert.Equal(t, wallet.Wallet{
		Address: "GABC...",
		Name:    "My Wallet",
		Color:   colour(t, "blue"),
		Emoji:   "🙂",
	}, fin.Wallet)
	assert.False(t, f.IsOpen())
}

// 시나리오 B: 복구 구문으로 가져오기
func TestScenarioImportSeed(t *testing.T) {
	gen := &fakeGenerator{address: "seed-address"}
	f := NewAddWalletFlow(Env{Generator: gen})
	f.Open()

	feed(f, ChooseImport{})
	require.Equal(t, PositionMode, f.Position())
	feed(f, ChooseMode{Mode: ModeSeed})
	feed(f, PasteCredential{Text: twelveWords})
	feed(f, Continue{})
	feed(f, EditName{Name: "Imported"})
	feed(f, Continue{})
	feed(f, SelectColor{Color: colour(t, "red")})
	feed(f, Continue{})
	feed(f, SelectEmoji{Emoji: "💰"})
	feed(f, Continue{})
	acceptAll(f)
	feed(f, Continue{})

	require.Equal(t, 1, gen.calls())
	require.NotNil(t, gen.sources[0])
	assert.Equal(t, wallet.SourceSeed, gen.sources[0].Kind)
	assert.Equal(t, twelveWords, gen.sources[0].Secret)

	fin, ok := feed(f, Finish{}).(Finished)
	require.True(t, ok)
	assert.Equal(t, "seed-address", fin.Wallet.Address)
	assert.Equal(t, "Imported", fin.Wallet.Name)
	assert.Equal(t, "💰", fin.Wallet.Emoji)
}

// 시나리오 C: 주소 생성 실패 후 취소
func TestScenarioDerivationFailure(t *testing.T) {
	gen := &fakeGenerator{err: &wallet.GenerationError{Cause: errors.New("bad key")}}
	f := NewAddWalletFlow(Env{Generator: gen})
	f.Open()

	feed(f, ChooseCreate{})
	feed(f, EditName{Name: "w"})
	feed(f, Continue{})
	feed(f, SelectColor{Color: colour(t, "green")})
	feed(f, Continue{})
	feed(f, SelectEmoji{Emoji: "🙂"})
	feed(f, Continue{})
	acceptAll(f)
	feed(f, Continue{})

	p := f.Current().(*PresentStep)
	require.Equal(t, PresentFailed, p.State)
	assert.Equal(t, "bad key", p.Err)
	assert.Nil(t, feed(f, Finish{}))

	assert.Equal(t, Aborted{}, feed(f, Cancel{}))
	assert.False(t, f.IsOpen())
	assert.Equal(t, PositionNone, f.Position())
}

func TestCancelWhileDerivingDropsLateResult(t *testing.T) {
	f := NewAddWalletFlow(Env{Generator: &fakeGenerator{address: "late"}})
	f.Open()
	f.Update(ChooseCreate{})
	f.Update(EditName{Name: "w"})
	f.Update(Continue{})
	f.Update(SelectColor{Color: colour(t, "green")})
	f.Update(Continue{})
	f.Update(SelectEmoji{Emoji: "🙂"})
	f.Update(Continue{})
	for _, term := range AllTerms {
		f.Update(SetTerm{Term: term, Accepted: true})
	}
	_, cmd := f.Update(Continue{})
	require.NotNil(t, cmd)

	assert.Equal(t, Aborted{}, feed(f, Cancel{}))

	for _, m := range drain(cmd) {
		sig, _ := f.Update(m)
		assert.Nil(t, sig)
	}
	assert.False(t, f.IsOpen())

	// 다시 열어도 이전 결과가 새 인스턴스에 들어가지 않음
	f.Open()
	for _, m := range drain(cmd) {
		f.Update(m)
	}
	assert.Equal(t, PositionPrompt, f.Position())
}

func TestPromptCancelAndDismiss(t *testing.T) {
	f := NewAddWalletFlow(Env{Generator: &fakeGenerator{}})
	f.Open()
	assert.Equal(t, Aborted{}, feed(f, Cancel{}))
	assert.False(t, f.IsOpen())

	// 닫힌 상태에서는 무시
	assert.Nil(t, feed(f, Continue{}))

	feed(f, Open{})
	feed(f, ChooseImport{})
	feed(f, ChooseMode{Mode: ModeKey})
	assert.Equal(t, Aborted{}, feed(f, Dismiss{}))
	assert.False(t, f.IsOpen())
}

func TestGenerateNameCancelCloses(t *testing.T) {
	f := NewAddWalletFlow(Env{Generator: &fakeGenerator{}})
	f.Open()
	feed(f, ChooseCreate{})
	feed(f, EditName{Name: "typed"})

	assert.Equal(t, Aborted{}, feed(f, Cancel{}))
	assert.False(t, f.IsOpen())
}

func TestImportModeCancelCloses(t *testing.T) {
	f := NewAddWalletFlow(Env{Generator: &fakeGenerator{}})
	f.Open()
	feed(f, ChooseImport{})

	assert.Equal(t, Aborted{}, feed(f, Cancel{}))
	assert.False(t, f.IsOpen())
}

// 다시 열면 빈 초안에서 시작
func TestReopenStartsFresh(t *testing.T) {
	f := NewAddWalletFlow(Env{Generator: &fakeGenerator{address: "a"}})
	f.Open()
	feed(f, ChooseCreate{})
	feed(f, EditName{Name: "first"})
	feed(f, Continue{})
	feed(f, SelectColor{Color: colour(t, "pink")})
	feed(f, Dismiss{})

	f.Open()
	feed(f, ChooseCreate{})
	name := f.Current().(*NameStep)
	assert.Empty(t, name.Name)
	assert.Equal(t, Draft{}, name.Draft())

	feed(f, EditName{Name: "second"})
	feed(f, Continue{})
	assert.Nil(t, f.Current().(*ColorStep).Color)
}

// 색상 선택 후 이름으로 돌아갔다 와도 색상 유지
func TestCreateFlowBackKeepsLaterFields(t *testing.T) {
	blue := colour(t, "blue")
	f := NewCreateFlow(nil)

	f.Update(EditName{Name: "w"})
	f.Update(Continue{})
	f.Update(SelectColor{Color: blue})
	f.Update(Back{})
	f.Update(EditName{Name: "renamed"})
	f.Update(Continue{})

	require.Equal(t, PositionColor, f.Position())
	require.True(t, f.CanContinue())
	assert.Equal(t, blue, *f.Current().(*ColorStep).Color)
	assert.Equal(t, "renamed", f.Draft().Name)

	f.Update(Continue{})
	f.Update(SelectEmoji{Emoji: "🙂"})
	f.Update(Back{})
	f.Update(Back{})
	f.Update(Continue{})
	f.Update(Continue{})
	require.Equal(t, PositionEmoji, f.Position())
	assert.Equal(t, "🙂", f.Current().(*EmojiStep).Emoji)
}

func TestCreateFlowTermsUncheckedAfterBack(t *testing.T) {
	f := NewCreateFlow(nil)
	f.Update(EditName{Name: "w"})
	f.Update(Continue{})
	f.Update(SelectColor{Color: colour(t, "red")})
	f.Update(Continue{})
	f.Update(SelectEmoji{Emoji: "🙂"})
	f.Update(Continue{})
	for _, term := range AllTerms {
		f.Update(SetTerm{Term: term, Accepted: true})
	}
	require.True(t, f.CanContinue())

	f.Update(Back{})
	require.Equal(t, PositionEmoji, f.Position())
	assert.False(t, f.Draft().Terms.Accepted())

	f.Update(Continue{})
	require.Equal(t, PositionTerms, f.Position())
	assert.False(t, f.CanContinue())
	assert.Equal(t, "🙂", f.Draft().Emoji)
}

func TestImportBlankCredentialBlocked(t *testing.T) {
	f := NewImportFlow(Env{Generator: &fakeGenerator{}})
	f.Update(ChooseMode{Mode: ModeSeed})
	require.Equal(t, PositionSeed, f.Position())

	f.Update(EditCredential{Text: "   "})
	f.Update(Continue{})
	assert.Equal(t, PositionSeed, f.Position())
}
