package onboarding

import "github.com/abcfe/abcfe-wallet/wallet"

// Signal is what a flow reports to its parent after handling a message.
// A nil Signal means the flow stays in charge.
type Signal interface {
	signal()
}

// Completed leaves the create flow with a finished draft (no address yet).
type Completed struct {
	Draft Draft
}

// Cancelled leaves a flow from its entry step with the source it was given.
type Cancelled struct {
	Source *wallet.Source
}

// Finished carries the wallet built by the present step.
type Finished struct {
	Wallet wallet.Wallet
}

// Aborted closes the wizard without a wallet.
type Aborted struct{}

func (Completed) signal() {}
func (Cancelled) signal() {}
func (Finished) signal()  {}
func (Aborted) signal()   {}
