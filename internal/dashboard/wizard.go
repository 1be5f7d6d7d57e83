package dashboard

import (
	"fmt"
	"strings"

	"github.com/abcfe/abcfe-wallet/internal/dashboard/components"
	"github.com/abcfe/abcfe-wallet/internal/dashboard/styles"
	"github.com/abcfe/abcfe-wallet/internal/onboarding"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	colorColumns = 5
	emojiColumns = 12
	emojiRows    = 6
)

var emojis = wallet.Emojis()

var termText = map[onboarding.Term]string{
	onboarding.TermResponsibility: "I am solely responsible for the security and backup of my wallets.",
	onboarding.TermLegal:          "Using the app for any illegal purposes is prohibited and against terms.",
	onboarding.TermInstitution:    "The app is not a bank, exchange, or centralized financial institution.",
	onboarding.TermAccess:         "If I lose access to my wallets, no one is liable and able to help.",
}

func paletteIndex(c wallet.Colour) int {
	return wallet.PaletteIndex(c)
}

func emojiIndex(e string) int {
	for i, v := range emojis {
		if v == e {
			return i
		}
	}
	return -1
}

// updateWizard는 키 입력을 현재 단계의 위저드 메시지로 변환
func (m Model) updateWizard(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(k, m.keys.Dismiss) {
		return m.dispatch(onboarding.Dismiss{})
	}

	switch s := m.list.Flow().Current().(type) {
	case *onboarding.PromptStep:
		switch {
		case key.Matches(k, m.keys.Create):
			return m.dispatch(onboarding.ChooseCreate{})
		case key.Matches(k, m.keys.Import):
			return m.dispatch(onboarding.ChooseImport{})
		case key.Matches(k, m.keys.Move):
			m.cursor = 1 - m.cursor
		case key.Matches(k, m.keys.Enter):
			if m.cursor == 0 {
				return m.dispatch(onboarding.ChooseCreate{})
			}
			return m.dispatch(onboarding.ChooseImport{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Cancel{})
		}

	case *onboarding.ModeStep:
		switch {
		case key.Matches(k, m.keys.Move):
			m.cursor = 1 - m.cursor
		case key.Matches(k, m.keys.Enter):
			mode := onboarding.ModeSeed
			if m.cursor == 1 {
				mode = onboarding.ModeKey
			}
			return m.dispatch(onboarding.ChooseMode{Mode: mode})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Cancel{})
		}

	case *onboarding.SeedStep, *onboarding.KeyStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Continue{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Cancel{})
		case key.Matches(k, m.keys.Paste):
			return m, m.readClipboard()
		case k.Paste:
			// bracketed paste
			return m.dispatch(onboarding.PasteCredential{Text: strings.TrimSpace(string(k.Runes))})
		}
		var cmd tea.Cmd
		m.credInput, cmd = m.credInput.Update(k)
		next, cmd2 := m.dispatch(onboarding.EditCredential{Text: m.credInput.Value()})
		return next, tea.Batch(cmd, cmd2)

	case *onboarding.NameStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Continue{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Cancel{})
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(k)
		next, cmd2 := m.dispatch(onboarding.EditName{Name: m.nameInput.Value()})
		return next, tea.Batch(cmd, cmd2)

	case *onboarding.ColorStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Continue{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Back{})
		case key.Matches(k, m.keys.Select):
			return m.dispatch(onboarding.SelectColor{Color: wallet.Palette[m.cursor].Colour})
		case key.Matches(k, m.keys.Move):
			m.cursor = moveGrid(m.cursor, k.String(), colorColumns, len(wallet.Palette))
		}

	case *onboarding.EmojiStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Continue{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Back{})
		case key.Matches(k, m.keys.Select):
			return m.dispatch(onboarding.SelectEmoji{Emoji: emojis[m.cursor]})
		case key.Matches(k, m.keys.Move):
			m.cursor = moveGrid(m.cursor, k.String(), emojiColumns, len(emojis))
		}

	case *onboarding.TermsStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Continue{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Back{})
		case key.Matches(k, m.keys.Select):
			term := onboarding.AllTerms[m.cursor]
			return m.dispatch(onboarding.SetTerm{Term: term, Accepted: !s.Terms.Get(term)})
		case key.Matches(k, m.keys.Move):
			m.cursor = moveGrid(m.cursor, k.String(), 1, len(onboarding.AllTerms))
		}

	case *onboarding.PresentStep:
		switch {
		case key.Matches(k, m.keys.Enter):
			return m.dispatch(onboarding.Finish{})
		case key.Matches(k, m.keys.Back):
			return m.dispatch(onboarding.Cancel{})
		}
	}
	return m, nil
}

// moveGrid는 columns 열 격자에서 커서를 이동
func moveGrid(cursor int, dir string, columns, n int) int {
	next := cursor
	switch dir {
	case "left":
		next--
	case "right":
		next++
	case "up":
		next -= columns
	case "down":
		next += columns
	}
	if next < 0 || next >= n {
		return cursor
	}
	return next
}

func (m Model) renderWizard() string {
	var b strings.Builder

	step := m.list.Flow().Current()
	if idx := onboarding.CreateStepIndex(step.Position()); idx >= 0 {
		b.WriteString(components.Stepper(idx, draftColor(step)))
		b.WriteString("\n\n")
	}

	switch s := step.(type) {
	case *onboarding.PromptStep:
		b.WriteString(styles.HeaderStyle.Render("Add Wallet"))
		b.WriteString("\n")
		b.WriteString(m.option(0, "Create a new wallet"))
		b.WriteString(m.option(1, "Add an existing wallet"))

	case *onboarding.ModeStep:
		b.WriteString(styles.HeaderStyle.Render("Import Method"))
		b.WriteString("\n")
		b.WriteString(m.option(0, "Recovery phrase"))
		b.WriteString(m.option(1, "Private key"))

	case *onboarding.SeedStep:
		b.WriteString(styles.HeaderStyle.Render("Enter Recovery Phrase"))
		b.WriteString("\n")
		b.WriteString(m.credInput.View())
		b.WriteString("\n")
		for _, h := range wallet.UnknownWords(s.Phrase) {
			hint := fmt.Sprintf("  단어 %d %q 는 목록에 없습니다", h.Index+1, h.Word)
			if h.Suggestion != "" {
				hint += fmt.Sprintf(" (%s?)", h.Suggestion)
			}
			b.WriteString(styles.WarningStyle.Render(hint))
			b.WriteString("\n")
		}
		if s.Rejected {
			b.WriteString(styles.ErrorStyle.Render("  ✗ 소문자 단어 12개가 아닙니다"))
			b.WriteString("\n")
		}

	case *onboarding.KeyStep:
		b.WriteString(styles.HeaderStyle.Render("Enter Private Key"))
		b.WriteString("\n")
		b.WriteString(m.credInput.View())
		b.WriteString("\n")
		if s.Rejected {
			b.WriteString(styles.ErrorStyle.Render("  ✗ 클립보드가 비어 있습니다"))
			b.WriteString("\n")
		}

	case *onboarding.NameStep:
		b.WriteString(styles.HeaderStyle.Render("Name Your Wallet"))
		b.WriteString("\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("This is visible only to you."))

	case *onboarding.ColorStep:
		b.WriteString(styles.HeaderStyle.Render("Pick a Color"))
		b.WriteString("\n")
		for i, p := range wallet.Palette {
			cell := " " + styles.Swatch(p.Colour) + " "
			if i == m.cursor {
				cell = styles.SelectedStyle.Render("[") + styles.Swatch(p.Colour) + styles.SelectedStyle.Render("]")
			}
			b.WriteString(cell)
			if (i+1)%colorColumns == 0 {
				b.WriteString("\n")
			}
		}
		if s.Color != nil {
			b.WriteString(styles.MutedStyle.Render("selected: " + s.Color.Hex()))
		}

	case *onboarding.EmojiStep:
		b.WriteString(styles.HeaderStyle.Render("Set a Display Emoji"))
		b.WriteString("\n")
		b.WriteString(m.renderEmojiGrid())
		if s.Emoji != "" {
			b.WriteString(styles.MutedStyle.Render("selected: ") + s.Emoji)
		}

	case *onboarding.TermsStep:
		b.WriteString(styles.HeaderStyle.Render("Accept Terms"))
		b.WriteString("\n")
		for i, t := range onboarding.AllTerms {
			box := "[ ]"
			if s.Terms.Get(t) {
				box = styles.SuccessStyle.Render("[✓]")
			}
			line := fmt.Sprintf("%s %s", box, termText[t])
			if i == m.cursor {
				line = styles.SelectedStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}

	case *onboarding.PresentStep:
		b.WriteString(m.renderPresent(s))
	}

	return styles.SheetStyle.Render(b.String())
}

func (m Model) option(i int, label string) string {
	if i == m.cursor {
		return styles.SelectedStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

func (m Model) renderEmojiGrid() string {
	var b strings.Builder

	row := m.cursor / emojiColumns
	first := max(0, row-emojiRows/2)
	for r := first; r < first+emojiRows; r++ {
		for c := 0; c < emojiColumns; c++ {
			i := r*emojiColumns + c
			if i >= len(emojis) {
				break
			}
			if i == m.cursor {
				b.WriteString(styles.SelectedStyle.Render("[") + emojis[i] + styles.SelectedStyle.Render("]"))
			} else {
				b.WriteString(" " + emojis[i] + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPresent(s *onboarding.PresentStep) string {
	var b strings.Builder

	switch s.State {
	case onboarding.PresentDeriving:
		b.WriteString(m.spinner.View() + " 주소 생성 중...")

	case onboarding.PresentFailed:
		b.WriteString(styles.ErrorStyle.Render("✗ Error: " + s.Err))
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("esc 로 닫기"))

	case onboarding.PresentReady:
		d := s.Draft()
		w := wallet.Wallet{Address: s.Address, Name: d.Name, Emoji: d.Emoji}
		if d.Color != nil {
			w.Color = *d.Color
		}
		b.WriteString(components.Card(w, true))
		b.WriteString("\n")
		if qr, err := components.QR(s.Address); err == nil {
			b.WriteString(qr)
		}
		b.WriteString(s.Address)
		b.WriteString("\n\n")
		b.WriteString(styles.SelectedStyle.Render("enter: Finish"))
	}
	return b.String()
}

func draftColor(step onboarding.Step) *wallet.Colour {
	switch s := step.(type) {
	case *onboarding.ColorStep:
		return s.Color
	case *onboarding.EmojiStep:
		return s.Draft().Color
	case *onboarding.TermsStep:
		return s.Draft().Color
	}
	return nil
}
