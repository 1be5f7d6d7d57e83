package components

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abcfe/abcfe-wallet/internal/dashboard/styles"
)

// LogViewer는 지갑 로그 파일 뷰어
type LogViewer struct {
	pathFn      func(time.Time) string
	lines       []LogLine
	maxLines    int
	lastModTime time.Time
}

// LogLine은 파싱된 로그 라인
type LogLine struct {
	Time    string
	Level   string
	Message string
	Raw     string
}

// NewLogViewer는 새 로그 뷰어 생성. pathFn은 날짜별 로그 파일 경로를 반환
func NewLogViewer(pathFn func(time.Time) string, maxLines int) *LogViewer {
	return &LogViewer{
		pathFn:   pathFn,
		maxLines: maxLines,
		lines:    make([]LogLine, 0),
	}
}

// GetLogPath는 오늘 로그 파일 경로 반환
func (lv *LogViewer) GetLogPath() string {
	return lv.pathFn(time.Now())
}

// Refresh는 로그 파일을 다시 읽음
func (lv *LogViewer) Refresh() error {
	logPath := lv.GetLogPath()

	info, err := os.Stat(logPath)
	if err != nil {
		// 파일이 없으면 빈 로그
		lv.lines = []LogLine{{
			Level:   "INFO",
			Message: fmt.Sprintf("로그 파일 없음: %s", logPath),
		}}
		return nil
	}

	// 수정 시간이 같으면 스킵
	if info.ModTime().Equal(lv.lastModTime) {
		return nil
	}
	lv.lastModTime = info.ModTime()

	file, err := os.Open(logPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var allLines []LogLine
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		allLines = append(allLines, ParseLine(scanner.Text()))
	}

	// 마지막 maxLines만 유지
	if len(allLines) > lv.maxLines {
		allLines = allLines[len(allLines)-lv.maxLines:]
	}

	lv.lines = allLines
	return nil
}

// ParseLine은 zap JSON 로그 라인을 파싱
// {"level":"INFO","date":"2025-01-03T12:00:00.000Z","msg":"info","Info":"message"}
func ParseLine(line string) LogLine {
	result := LogLine{Raw: line, Level: "INFO"}

	for _, lvl := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if strings.Contains(line, `"level":"`+lvl+`"`) {
			result.Level = lvl
			break
		}
	}

	// 시간 추출
	if v, ok := field(line, `"date":"`); ok {
		if t, err := time.Parse("2006-01-02T15:04:05.000Z0700", v); err == nil {
			result.Time = t.Format("15:04:05")
		} else if t, err := time.Parse(time.RFC3339, v); err == nil {
			result.Time = t.Format("15:04:05")
		} else {
			result.Time = v
		}
	}

	// "Info":"메시지" 또는 "Err":"메시지" 등
	for _, key := range []string{`"Info":"`, `"Debug":"`, `"Warn":"`, `"Err":"`} {
		if v, ok := field(line, key); ok {
			result.Message = v
			break
		}
	}

	if result.Message == "" {
		result.Message = line
		if len(result.Message) > 80 {
			result.Message = result.Message[:80] + "..."
		}
	}
	return result
}

func field(line, key string) (string, bool) {
	idx := strings.Index(line, key)
	if idx == -1 {
		return "", false
	}
	start := idx + len(key)
	end := strings.Index(line[start:], `"`)
	if end <= 0 {
		return "", false
	}
	return line[start : start+end], true
}

// GetLines는 현재 로그 라인들 반환
func (lv *LogViewer) GetLines() []LogLine {
	return lv.lines
}

// Render는 로그 뷰어를 문자열로 렌더링
func (lv *LogViewer) Render(width int) string {
	var b strings.Builder

	b.WriteString(styles.HeaderStyle.Render("LOGS"))
	b.WriteString("\n")

	if len(lv.lines) == 0 {
		b.WriteString(styles.MutedStyle.Render("  로그가 없습니다"))
		return b.String()
	}

	maxMsgLen := width - 20
	if maxMsgLen < 20 {
		maxMsgLen = 20
	}
	for _, line := range lv.lines {
		timeStr := line.Time
		if timeStr == "" {
			timeStr = "        "
		}
		msg := line.Message
		if len(msg) > maxMsgLen {
			msg = msg[:maxMsgLen] + "..."
		}

		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.MutedStyle.Render(timeStr),
			styles.LogLevelStyle(line.Level).Render(fmt.Sprintf("%-5s", line.Level)),
			msg))
	}
	return b.String()
}
