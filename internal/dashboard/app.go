package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/abcfe/abcfe-wallet/common/logger"
	"github.com/abcfe/abcfe-wallet/internal/dashboard/components"
	"github.com/abcfe/abcfe-wallet/internal/dashboard/styles"
	"github.com/abcfe/abcfe-wallet/internal/onboarding"
	"github.com/abcfe/abcfe-wallet/internal/walletlist"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Config는 대시보드 설정
type Config struct {
	Controller *walletlist.Controller
	// LogPath는 날짜별 로그 파일 경로. nil이면 로그 뷰어 비활성
	LogPath    func(time.Time) string
	RefreshSec int
	// Clipboard는 붙여넣기 원본. nil이면 시스템 클립보드
	Clipboard func() (string, error)
}

// Model은 Bubbletea 모델
type Model struct {
	config    Config
	list      *walletlist.Controller
	keys      keyMap
	help      help.Model
	nameInput textinput.Model
	credInput textinput.Model
	spinner   spinner.Model
	logViewer *components.LogViewer

	// 위저드 커서 (프롬프트, 모드, 색상, 이모지, 약관)
	cursor   int
	lastPos  onboarding.Position
	selected int

	width    int
	height   int
	showLogs bool
	showHelp bool
	quitting bool
}

// Run은 지갑 TUI 실행
func Run(config Config) error {
	m := NewModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewModel(config Config) Model {
	if config.Clipboard == nil {
		config.Clipboard = clipboard.ReadAll
	}
	if config.RefreshSec <= 0 {
		config.RefreshSec = 2
	}

	name := textinput.New()
	name.Placeholder = "My Wallet"
	name.CharLimit = 32
	name.Width = 32

	cred := textinput.New()
	cred.CharLimit = 256
	cred.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SelectedStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		config:    config,
		list:      config.Controller,
		keys:      newKeyMap(),
		help:      h,
		nameInput: name,
		credInput: cred,
		spinner:   sp,
	}
	if config.LogPath != nil {
		m.logViewer = components.NewLogViewer(config.LogPath, 10)
	}
	return m
}

// tickMsg는 주기적 로그 갱신 메시지
type tickMsg time.Time

// clipboardMsg는 클립보드 읽기 결과
type clipboardMsg struct {
	text string
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.config.RefreshSec),
		m.list.Init(),
	)
}

func tickCmd(seconds int) tea.Cmd {
	return tea.Tick(time.Duration(seconds)*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) readClipboard() tea.Cmd {
	read := m.config.Clipboard
	return func() tea.Msg {
		text, err := read()
		if err != nil {
			logger.Warn("read clipboard: ", err)
			text = ""
		}
		return clipboardMsg{text: strings.TrimSpace(text)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.list.Flow().IsOpen() {
			return m.updateWizard(msg)
		}
		return m.updateList(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.logViewer != nil && m.showLogs {
			logger.HandleErr(m.logViewer.Refresh())
		}
		return m, tickCmd(m.config.RefreshSec)

	case spinner.TickMsg:
		// 주소 생성 중일 때만 스피너 유지
		if p, ok := m.list.Flow().Current().(*onboarding.PresentStep); ok && p.State == onboarding.PresentDeriving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case clipboardMsg:
		return m.dispatch(onboarding.PasteCredential{Text: msg.text})
	}

	// walletlist.FetchedMsg, AppendedMsg, 주소 생성 결과 등
	return m.dispatch(msg)
}

func (m Model) updateList(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(k, m.keys.Add):
		m.list.StartOnboarding()
		return m.sync(nil)

	case key.Matches(k, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs && m.logViewer != nil {
			logger.HandleErr(m.logViewer.Refresh())
		}

	case key.Matches(k, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case k.String() == "up" || k.String() == "k":
		if m.selected > 0 {
			m.selected--
		}

	case k.String() == "down" || k.String() == "j":
		if m.selected < len(m.list.Wallets())-1 {
			m.selected++
		}
	}
	return m, nil
}

// dispatch는 메시지를 컨트롤러에 전달하고 입력 상태를 맞춤
func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.sync(m.list.Update(msg))
}

// sync는 위저드 단계가 바뀌면 입력창과 커서를 새 단계에 맞춤
func (m Model) sync(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{cmd}
	step := m.list.Flow().Current()
	pos := m.list.Flow().Position()

	if pos != m.lastPos {
		m.lastPos = pos
		m.cursor = 0
		m.nameInput.Blur()
		m.credInput.Blur()

		switch s := step.(type) {
		case *onboarding.ModeStep:
			if s.Mode == onboarding.ModeKey {
				m.cursor = 1
			}
		case *onboarding.NameStep:
			m.nameInput.SetValue(s.Name)
			cmds = append(cmds, m.nameInput.Focus())
		case *onboarding.SeedStep:
			m.credInput.Placeholder = "twelve word recovery phrase"
			m.credInput.EchoMode = textinput.EchoNormal
			m.credInput.SetValue(s.Phrase)
			cmds = append(cmds, m.credInput.Focus())
		case *onboarding.KeyStep:
			m.credInput.Placeholder = "private key"
			m.credInput.EchoMode = textinput.EchoPassword
			m.credInput.SetValue(s.Key)
			cmds = append(cmds, m.credInput.Focus())
		case *onboarding.ColorStep:
			if s.Color != nil {
				m.cursor = max(0, paletteIndex(*s.Color))
			}
		case *onboarding.EmojiStep:
			m.cursor = max(0, emojiIndex(s.Emoji))
		case *onboarding.PresentStep:
			if s.State == onboarding.PresentDeriving {
				cmds = append(cmds, m.spinner.Tick)
			}
		}
	}

	// 붙여넣기로 바뀐 필드 반영
	switch s := step.(type) {
	case *onboarding.SeedStep:
		if m.credInput.Value() != s.Phrase {
			m.credInput.SetValue(s.Phrase)
		}
	case *onboarding.KeyStep:
		if m.credInput.Value() != s.Key {
			m.credInput.SetValue(s.Key)
		}
	}

	if n := len(m.list.Wallets()); m.selected >= n {
		m.selected = max(0, n-1)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// 헤더
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.list.Flow().IsOpen() {
		b.WriteString(m.renderWizard())
	} else {
		b.WriteString(m.renderWallets())
	}
	b.WriteString("\n")

	// 상태 라인
	if err := m.list.LastErr(); err != nil {
		b.WriteString(styles.ErrorStyle.Render("  ✗ 저장 실패: " + err.Error()))
		b.WriteString("\n")
	}

	// 로그 뷰어
	if m.showLogs && m.logViewer != nil {
		b.WriteString("\n")
		b.WriteString(styles.BoxStyle.Render(m.logViewer.Render(m.width - 4)))
		b.WriteString("\n")
	}

	// 도움말 바
	var km help.KeyMap = m.keys
	if m.list.Flow().IsOpen() {
		km = wizardKeyMap{m.keys}
	}
	b.WriteString(styles.HelpBarStyle.Render(m.help.View(km)))

	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render(" ABCFe Wallets ")

	status := "불러오는 중..."
	if m.list.Fetched() {
		status = fmt.Sprintf("지갑: %d", len(m.list.Wallets()))
	}
	statusText := styles.MutedStyle.Render(status)

	// 오른쪽 정렬
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(statusText) - 2
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + statusText
}

func (m Model) renderWallets() string {
	wallets := m.list.Wallets()
	if len(wallets) == 0 {
		return styles.MutedStyle.Render("  지갑이 없습니다. a 를 눌러 추가하세요")
	}

	cards := make([]string, len(wallets))
	for i, w := range wallets {
		cards[i] = components.Card(w, i == m.selected)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
