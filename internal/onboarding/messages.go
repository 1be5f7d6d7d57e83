package onboarding

import "github.com/abcfe/abcfe-wallet/wallet"

// ImportMode is the credential kind picked on the mode step.
type ImportMode int

const (
	ModeUnset ImportMode = iota
	ModeSeed
	ModeKey
)

// Messages dispatched into the wizard. Each is routed unchanged down to the
// active step.
type (
	// Open starts the wizard from Closed.
	Open struct{}
	// Dismiss closes the wizard from any step.
	Dismiss struct{}

	ChooseCreate struct{}
	ChooseImport struct{}

	Continue struct{}
	Back     struct{}
	Cancel   struct{}

	EditName    struct{ Name string }
	SelectColor struct{ Color wallet.Colour }
	SelectEmoji struct{ Emoji string }
	SetTerm     struct {
		Term     Term
		Accepted bool
	}

	ChooseMode     struct{ Mode ImportMode }
	EditCredential struct{ Text string }
	// PasteCredential carries clipboard text; empty means the clipboard was empty.
	PasteCredential struct{ Text string }

	Finish struct{}

	// AddressDerived and DerivationFailed complete the derivation issued by
	// the present step with the matching Instance.
	AddressDerived struct {
		Instance string
		Address  string
	}
	DerivationFailed struct {
		Instance string
		Err      error
	}
)
