package onboarding

import (
	"context"
	"time"

	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/wallet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Env carries the collaborators the wizard calls out to.
type Env struct {
	Generator wallet.Generator
	// Timeout bounds one derivation call; zero means no bound.
	Timeout time.Duration
}

type PresentState int

const (
	PresentDeriving PresentState = iota
	PresentReady
	PresentFailed
)

func (s PresentState) String() string {
	switch s {
	case PresentDeriving:
		return "deriving"
	case PresentReady:
		return "ready"
	case PresentFailed:
		return "failed"
	}
	return "unknown"
}

// PresentStep derives the address for a completed draft and builds the
// wallet once the user confirms. Results are matched by instance id, so a
// result addressed to a discarded instance never lands anywhere.
type PresentStep struct {
	id        string
	draft     Draft
	requested bool
	finished  bool

	State   PresentState
	Address string
	Err     string
}

func newPresentStep(d Draft) *PresentStep {
	return &PresentStep{id: uuid.NewString(), draft: d}
}

func (p *PresentStep) Position() Position { return PositionPresent }
func (p *PresentStep) CanContinue() bool  { return p.State == PresentReady }
func (p *PresentStep) Instance() string   { return p.id }
func (p *PresentStep) Draft() Draft       { return p.draft }

// Start issues the derivation call. Only the first call returns a command.
func (p *PresentStep) Start(env Env) tea.Cmd {
	if p.requested {
		return nil
	}
	p.requested = true

	id, source, gen, timeout := p.id, p.draft.Source, env.Generator, env.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		address, err := gen.Generate(ctx, source)
		if err != nil {
			logger.Warn("address derivation failed (", source, "): ", err)
			return DerivationFailed{Instance: id, Err: err}
		}
		logger.Debug("address derived for instance ", id)
		return AddressDerived{Instance: id, Address: address}
	}
}

func (p *PresentStep) Update(msg tea.Msg) Signal {
	switch msg := msg.(type) {
	case AddressDerived:
		if msg.Instance == p.id && p.State == PresentDeriving {
			p.State = PresentReady
			p.Address = msg.Address
		}
	case DerivationFailed:
		if msg.Instance == p.id && p.State == PresentDeriving {
			p.State = PresentFailed
			p.Err = errorText(msg.Err)
		}
	case Finish:
		if p.State == PresentReady && !p.finished {
			p.finished = true
			return Finished{Wallet: p.wallet()}
		}
	case Cancel:
		return Aborted{}
	}
	return nil
}

func (p *PresentStep) wallet() wallet.Wallet {
	w := wallet.Wallet{
		Address: p.Address,
		Name:    p.draft.Name,
		Emoji:   p.draft.Emoji,
	}
	if p.draft.Color != nil {
		w.Color = *p.draft.Color
	}
	return w
}

func errorText(err error) string {
	if err == nil {
		return "address generation failed"
	}
	return err.Error()
}
