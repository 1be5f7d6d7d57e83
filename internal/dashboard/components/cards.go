package components

import (
	"strings"

	"github.com/abcfe/abcfe-wallet/internal/dashboard/styles"
	"github.com/abcfe/abcfe-wallet/wallet"
	"github.com/charmbracelet/lipgloss"
	"github.com/skip2/go-qrcode"
)

// ShortAddress는 주소를 앞 6자, 뒤 4자로 줄임
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// Card는 지갑 카드 렌더링
func Card(w wallet.Wallet, selected bool) string {
	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.White).
		Background(styles.WalletColor(w.Color)).
		Padding(0, 1).
		Render(w.Name)

	body := w.Emoji + " " + name + "\n" + styles.MutedStyle.Render(ShortAddress(w.Address))

	border := styles.Secondary
	if selected {
		border = styles.WalletColor(w.Color)
	}
	return styles.CardStyle.BorderForeground(border).Render(body)
}

// Stepper는 생성 단계 진행 표시 (4칸)
func Stepper(index int, tint *wallet.Colour) string {
	fill := lipgloss.NewStyle().Foreground(styles.Primary)
	if tint != nil {
		fill = lipgloss.NewStyle().Foreground(styles.WalletColor(*tint))
	}

	segments := make([]string, 4)
	for i := range segments {
		if i <= index {
			segments[i] = fill.Render("━━━━━")
		} else {
			segments[i] = styles.MutedStyle.Render("━━━━━")
		}
	}
	return strings.Join(segments, " ")
}

// QR은 주소를 터미널용 QR 코드로 렌더링
func QR(addr string) (string, error) {
	q, err := qrcode.New(addr, qrcode.Low)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}
