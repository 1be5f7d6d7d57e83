package onboarding

import (
	"github.com/abcfe/abcfe-wallet/common/logger"
	tea "github.com/charmbracelet/bubbletea"
)

// flow is a wizard branch below the prompt.
type flow interface {
	Step
	Current() Step
	Update(msg tea.Msg) (Signal, tea.Cmd)
}

// AddWalletFlow is the top of the wizard. Closed is a nil active step; the
// prompt leads to the generate or the import branch. It only reads the
// signals its children return and never touches their fields.
type AddWalletFlow struct {
	env    Env
	active Step // nil | *PromptStep | *GenerateFlow | *ImportFlow
}

func NewAddWalletFlow(env Env) *AddWalletFlow {
	return &AddWalletFlow{env: env}
}

// Open moves Closed to Prompt. An open wizard is left as it is.
func (f *AddWalletFlow) Open() {
	if f.active == nil {
		f.active = &PromptStep{}
	}
}

func (f *AddWalletFlow) IsOpen() bool { return f.active != nil }

func (f *AddWalletFlow) Position() Position {
	if f.active == nil {
		return PositionNone
	}
	return f.active.Position()
}

// Current returns the innermost active step, nil when closed.
func (f *AddWalletFlow) Current() Step {
	switch a := f.active.(type) {
	case flow:
		return a.Current()
	case nil:
		return nil
	default:
		return a
	}
}

// Update routes msg to the active branch. Finished is returned once with the
// wallet and the wizard closes; Aborted reports any other close.
func (f *AddWalletFlow) Update(msg tea.Msg) (Signal, tea.Cmd) {
	if _, ok := msg.(Open); ok {
		f.Open()
		return nil, nil
	}
	if f.active == nil {
		return nil, nil
	}
	if _, ok := msg.(Dismiss); ok {
		return f.close(Aborted{}), nil
	}

	switch a := f.active.(type) {
	case *PromptStep:
		switch msg.(type) {
		case ChooseCreate:
			f.active = NewGenerateFlow(f.env)
		case ChooseImport:
			f.active = NewImportFlow(f.env)
		case Cancel:
			return f.close(Aborted{}), nil
		}

	case flow:
		sig, cmd := a.Update(msg)
		switch sig := sig.(type) {
		case Finished:
			return f.close(sig), cmd
		case Cancelled, Aborted:
			return f.close(Aborted{}), cmd
		}
		return nil, cmd
	}
	return nil, nil
}

func (f *AddWalletFlow) close(sig Signal) Signal {
	logger.Debug("wizard closed at ", f.Position(), " with ", signalName(sig))
	f.active = nil
	return sig
}

func signalName(sig Signal) string {
	switch sig.(type) {
	case Finished:
		return "finished"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	case Completed:
		return "completed"
	}
	return "none"
}
