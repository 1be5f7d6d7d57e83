package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Quit    key.Binding
	UpDown  key.Binding
	Logs    key.Binding
	Help    key.Binding
	Enter   key.Binding
	Select  key.Binding
	Move    key.Binding
	Back    key.Binding
	Paste   key.Binding
	Dismiss key.Binding
	Create  key.Binding
	Import  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "지갑 추가")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "종료")),
		UpDown:  key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑↓", "선택")),
		Logs:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "로그")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "도움말")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "계속")),
		Select:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "선택")),
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "이동")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "뒤로")),
		Paste:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "붙여넣기")),
		Dismiss: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "닫기")),
		Create:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "새 지갑")),
		Import:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "가져오기")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.UpDown, k.Logs, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.UpDown, k.Logs},
		{k.Help, k.Quit},
	}
}

// wizardKeyMap 위저드가 열려 있을 때의 도움말
type wizardKeyMap struct {
	keyMap
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Select, k.Move, k.Back, k.Paste, k.Dismiss}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Select, k.Move},
		{k.Create, k.Import, k.Paste},
		{k.Back, k.Dismiss},
	}
}
