package onboarding

import (
	"github.com/abcfe/abcfe-wallet/wallet"
	tea "github.com/charmbracelet/bubbletea"
)

// CreateFlow walks Name -> Color -> Emoji -> Terms. Back returns one step
// and restores that step from the draft; Cancel exists only on Name.
type CreateFlow struct {
	step Step // *NameStep | *ColorStep | *EmojiStep | *TermsStep
}

// NewCreateFlow enters the flow at Name with the given credential source.
func NewCreateFlow(source *wallet.Source) *CreateFlow {
	return &CreateFlow{step: newNameStep(Draft{Source: source})}
}

func (f *CreateFlow) Position() Position { return f.step.Position() }
func (f *CreateFlow) CanContinue() bool  { return f.step.CanContinue() }

// Current returns the active step.
func (f *CreateFlow) Current() Step { return f.step }

// Draft returns the accumulated draft including edits on the active step.
func (f *CreateFlow) Draft() Draft {
	switch s := f.step.(type) {
	case *NameStep:
		return s.Draft()
	case *ColorStep:
		return s.Draft()
	case *EmojiStep:
		return s.Draft()
	case *TermsStep:
		return s.Draft()
	}
	return Draft{}
}

// Update applies msg to the active step. It returns Completed when Terms is
// accepted and Cancelled when Name is cancelled.
func (f *CreateFlow) Update(msg tea.Msg) Signal {
	switch s := f.step.(type) {
	case *NameStep:
		switch msg := msg.(type) {
		case EditName:
			s.Name = msg.Name
		case Continue:
			if s.CanContinue() {
				f.step = newColorStep(s.Draft())
			}
		case Cancel:
			return Cancelled{Source: s.Source()}
		}

	case *ColorStep:
		switch msg := msg.(type) {
		case SelectColor:
			c := msg.Color
			s.Color = &c
		case Continue:
			if s.CanContinue() {
				f.step = newEmojiStep(s.Draft())
			}
		case Back:
			f.step = newNameStep(s.Draft())
		}

	case *EmojiStep:
		switch msg := msg.(type) {
		case SelectEmoji:
			s.Emoji = msg.Emoji
		case Continue:
			if s.CanContinue() {
				f.step = newTermsStep(s.Draft())
			}
		case Back:
			f.step = newColorStep(s.Draft())
		}

	case *TermsStep:
		switch msg := msg.(type) {
		case SetTerm:
			s.Terms.Set(msg.Term, msg.Accepted)
		case Continue:
			if s.CanContinue() {
				return Completed{Draft: s.Draft()}
			}
		case Back:
			// term flags are not kept
			f.step = newEmojiStep(s.draft)
		}
	}
	return nil
}
