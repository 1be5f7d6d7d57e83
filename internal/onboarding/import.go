package onboarding

import (
	"github.com/abcfe/abcfe-wallet/wallet"
	tea "github.com/charmbracelet/bubbletea"
)

// ImportFlow adds an existing wallet: pick seed or key, enter it, then run
// the create steps and the present step with that source.
type ImportFlow struct {
	env    Env
	active Step // *ModeStep | *SeedStep | *KeyStep | *CreateFlow | *PresentStep
}

func NewImportFlow(env Env) *ImportFlow {
	return &ImportFlow{env: env, active: &ModeStep{}}
}

func (f *ImportFlow) Position() Position { return f.active.Position() }
func (f *ImportFlow) CanContinue() bool  { return f.active.CanContinue() }

// Current returns the innermost active step.
func (f *ImportFlow) Current() Step {
	if c, ok := f.active.(*CreateFlow); ok {
		return c.Current()
	}
	return f.active
}

func (f *ImportFlow) Update(msg tea.Msg) (Signal, tea.Cmd) {
	switch a := f.active.(type) {
	case *ModeStep:
		switch msg := msg.(type) {
		case ChooseMode:
			a.Mode = msg.Mode
			f.advanceMode(a)
		case Continue:
			f.advanceMode(a)
		case Cancel:
			return Cancelled{}, nil
		}

	case *SeedStep:
		a.Rejected = false
		switch msg := msg.(type) {
		case EditCredential:
			a.Phrase = msg.Text
		case PasteCredential:
			_ = a.Paste(msg.Text)
		case Continue:
			if a.CanContinue() {
				f.active = NewCreateFlow(wallet.Seed(a.Phrase))
			}
		case Cancel:
			f.active = &ModeStep{Mode: ModeSeed}
		}

	case *KeyStep:
		a.Rejected = false
		switch msg := msg.(type) {
		case EditCredential:
			a.Key = msg.Text
		case PasteCredential:
			_ = a.Paste(msg.Text)
		case Continue:
			if a.CanContinue() {
				f.active = NewCreateFlow(wallet.PrivateKey(a.Key))
			}
		case Cancel:
			f.active = &ModeStep{Mode: ModeKey}
		}

	case *CreateFlow:
		switch sig := a.Update(msg).(type) {
		case Completed:
			p := newPresentStep(sig.Draft)
			f.active = p
			return nil, p.Start(f.env)
		case Cancelled:
			f.active = restoreCredential(sig.Source)
		}

	case *PresentStep:
		return a.Update(msg), nil
	}
	return nil, nil
}

func (f *ImportFlow) advanceMode(s *ModeStep) {
	switch s.Mode {
	case ModeSeed:
		f.active = &SeedStep{}
	case ModeKey:
		f.active = &KeyStep{}
	}
}

// restoreCredential rebuilds the entry step the source came from with its
// text filled back in.
func restoreCredential(source *wallet.Source) Step {
	switch {
	case source == nil:
		return &ModeStep{}
	case source.Kind == wallet.SourceSeed:
		return &SeedStep{Phrase: source.Secret}
	case source.Kind == wallet.SourceKey:
		return &KeyStep{Key: source.Secret}
	}
	return &ModeStep{}
}
