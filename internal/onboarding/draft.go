package onboarding

import "github.com/abcfe/abcfe-wallet/wallet"

// Term is one of the acceptance statements on the terms step.
type Term int

const (
	TermResponsibility Term = iota
	TermLegal
	TermInstitution
	TermAccess
)

// AllTerms lists the terms in display order.
var AllTerms = []Term{TermResponsibility, TermLegal, TermInstitution, TermAccess}

type Terms struct {
	Responsibility bool
	Legal          bool
	Institution    bool
	Access         bool
}

// Accepted reports whether every term is accepted.
func (t Terms) Accepted() bool {
	return t.Responsibility && t.Legal && t.Institution && t.Access
}

func (t Terms) Get(term Term) bool {
	switch term {
	case TermResponsibility:
		return t.Responsibility
	case TermLegal:
		return t.Legal
	case TermInstitution:
		return t.Institution
	case TermAccess:
		return t.Access
	}
	return false
}

func (t *Terms) Set(term Term, accepted bool) {
	switch term {
	case TermResponsibility:
		t.Responsibility = accepted
	case TermLegal:
		t.Legal = accepted
	case TermInstitution:
		t.Institution = accepted
	case TermAccess:
		t.Access = accepted
	}
}

// Draft is the wallet data accumulated so far. Fields fill in order:
// source, name, color, emoji, terms.
type Draft struct {
	Source *wallet.Source
	Name   string
	Color  *wallet.Colour
	Emoji  string
	Terms  Terms
}
