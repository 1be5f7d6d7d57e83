package onboarding

import (
	"errors"
	"regexp"
	"strings"

	"github.com/abcfe/abcfe-wallet/wallet"
)

// ErrValidationFailed rejects clipboard text that cannot fill a credential
// field. It never leaves the step that produced it.
var ErrValidationFailed = errors.New("validation failed")

var seedShape = regexp.MustCompile(`^([a-z]+ ){11}[a-z]+$`)

// ValidSeedShape reports whether s is exactly twelve lowercase words joined
// by single spaces.
func ValidSeedShape(s string) bool {
	return seedShape.MatchString(s)
}

// Step is one wizard screen: its own editable fields plus the gate that
// decides whether Continue may leave it.
type Step interface {
	Position() Position
	CanContinue() bool
}

// NameStep is the entry of the create flow.
type NameStep struct {
	draft Draft
	Name  string
}

// Steps keep the whole draft so fields of later steps survive a Back.
func newNameStep(d Draft) *NameStep {
	return &NameStep{draft: d, Name: d.Name}
}

func (s *NameStep) Position() Position     { return PositionName }
func (s *NameStep) CanContinue() bool      { return strings.TrimSpace(s.Name) != "" }
func (s *NameStep) Source() *wallet.Source { return s.draft.Source }

// Draft returns the accumulated draft with the step's edits applied.
func (s *NameStep) Draft() Draft {
	d := s.draft
	d.Name = s.Name
	return d
}

type ColorStep struct {
	draft Draft
	Color *wallet.Colour
}

func newColorStep(d Draft) *ColorStep {
	return &ColorStep{draft: d, Color: d.Color}
}

func (s *ColorStep) Position() Position { return PositionColor }
func (s *ColorStep) CanContinue() bool  { return s.Color != nil }

func (s *ColorStep) Draft() Draft {
	d := s.draft
	d.Color = s.Color
	return d
}

type EmojiStep struct {
	draft Draft
	Emoji string
}

func newEmojiStep(d Draft) *EmojiStep {
	return &EmojiStep{draft: d, Emoji: d.Emoji}
}

func (s *EmojiStep) Position() Position { return PositionEmoji }
func (s *EmojiStep) CanContinue() bool  { return s.Emoji != "" }

func (s *EmojiStep) Draft() Draft {
	d := s.draft
	d.Emoji = s.Emoji
	return d
}

type TermsStep struct {
	draft Draft
	Terms Terms
}

// newTermsStep starts with every term unchecked.
func newTermsStep(d Draft) *TermsStep {
	d.Terms = Terms{}
	return &TermsStep{draft: d}
}

func (s *TermsStep) Position() Position { return PositionTerms }
func (s *TermsStep) CanContinue() bool  { return s.Terms.Accepted() }

func (s *TermsStep) Draft() Draft {
	d := s.draft
	d.Terms = s.Terms
	return d
}

// ModeStep picks between seed phrase and private key import.
type ModeStep struct {
	Mode ImportMode
}

func (s *ModeStep) Position() Position { return PositionMode }
func (s *ModeStep) CanContinue() bool  { return s.Mode == ModeSeed || s.Mode == ModeKey }

type SeedStep struct {
	Phrase string
	// Rejected is raised by a refused paste and cleared by the next message.
	Rejected bool
}

func (s *SeedStep) Position() Position { return PositionSeed }
func (s *SeedStep) CanContinue() bool  { return strings.TrimSpace(s.Phrase) != "" }

// Paste fills the phrase from clipboard text of the right shape.
func (s *SeedStep) Paste(text string) error {
	if !ValidSeedShape(text) {
		s.Rejected = true
		return ErrValidationFailed
	}
	s.Phrase = text
	return nil
}

type KeyStep struct {
	Key      string
	Rejected bool
}

func (s *KeyStep) Position() Position { return PositionKey }
func (s *KeyStep) CanContinue() bool  { return strings.TrimSpace(s.Key) != "" }

// Paste fills the key from any non-empty clipboard text.
func (s *KeyStep) Paste(text string) error {
	if text == "" {
		s.Rejected = true
		return ErrValidationFailed
	}
	s.Key = text
	return nil
}

// PromptStep is the create-or-import choice. It has no fields.
type PromptStep struct{}

func (s *PromptStep) Position() Position { return PositionPrompt }
func (s *PromptStep) CanContinue() bool  { return false }
