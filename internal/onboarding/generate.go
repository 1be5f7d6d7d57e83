package onboarding

import (
	tea "github.com/charmbracelet/bubbletea"
)

// GenerateFlow creates a wallet from a system-generated key: the create
// steps followed by the present step.
type GenerateFlow struct {
	env    Env
	active Step // *CreateFlow | *PresentStep
}

func NewGenerateFlow(env Env) *GenerateFlow {
	return &GenerateFlow{env: env, active: NewCreateFlow(nil)}
}

func (f *GenerateFlow) Position() Position { return f.active.Position() }
func (f *GenerateFlow) CanContinue() bool  { return f.active.CanContinue() }

// Current returns the innermost active step.
func (f *GenerateFlow) Current() Step {
	if c, ok := f.active.(*CreateFlow); ok {
		return c.Current()
	}
	return f.active
}

// Update forwards msg to the active child. Cancelled and Finished pass up
// unchanged; a cancelled present step reports Aborted.
func (f *GenerateFlow) Update(msg tea.Msg) (Signal, tea.Cmd) {
	switch a := f.active.(type) {
	case *CreateFlow:
		switch sig := a.Update(msg).(type) {
		case Completed:
			p := newPresentStep(sig.Draft)
			f.active = p
			return nil, p.Start(f.env)
		case Cancelled:
			return sig, nil
		}

	case *PresentStep:
		return a.Update(msg), nil
	}
	return nil, nil
}
