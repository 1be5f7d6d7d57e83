package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	conf "github.com/abcfe/abcfe-wallet/config"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger stays a no-op until InitLogger runs so library code and tests can log freely.
var logger = zap.NewNop()
var stag string

// FilePath returns the log file written for the given day.
func FilePath(cfg *conf.Config, day time.Time) string {
	return fmt.Sprintf("%s_%s.log", cfg.LogInfo.Path, day.Format("2006-01-02"))
}

// InitLogger opens the rotating log file. console tees debug output to stdout
// and must stay false while the terminal UI owns the screen.
func InitLogger(cfg *conf.Config, console bool) error {
	lPath := FilePath(cfg, time.Now())
	if err := os.MkdirAll(filepath.Dir(lPath), 0o755); err != nil {
		return err
	}

	// Check -debug flag
	hasDebugFlag := false
	for _, arg := range os.Args {
		if arg == "-debug" || arg == "--debug" {
			hasDebugFlag = true
			break
		}
	}

	if hasDebugFlag {
		cfg.Common.Level = "alpha"
	} else if cfg.Common.Level == "" {
		cfg.Common.Level = "prod"
	}

	rotator, err := rotatelogs.New(
		lPath,
		rotatelogs.WithMaxAge(time.Duration(cfg.LogInfo.MaxAgeHour)*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(cfg.LogInfo.RotateHour)*time.Hour))
	if err != nil {
		return err
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "date",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	w := zapcore.AddSync(rotator)
	var core zapcore.Core
	stag = cfg.Common.Level
	switch {
	case stag == "alpha" && console:
		core = zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zap.DebugLevel),
			zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), zap.DebugLevel),
		)
	case stag == "alpha":
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zap.DebugLevel)
	default:
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zap.InfoLevel)
	}
	logger = zap.New(core)

	logger.Info("logging init file start")
	return nil
}

func join(ctx []interface{}) string {
	var b bytes.Buffer
	for _, str := range ctx {
		b.WriteString(fmt.Sprintf("%v", str))
	}
	return b.String()
}

func Debug(ctx ...interface{}) {
	logger.Debug("debug", zap.String("Debug", join(ctx)))
}

func Info(ctx ...interface{}) {
	logger.Info("info", zap.String("Info", join(ctx)))
}

func Warn(ctx ...interface{}) {
	logger.Warn("warn", zap.String("Warn", join(ctx)))
}

func Error(ctx ...interface{}) {
	logger.Error("error", zap.String("Err", join(ctx)))
}

func Crit(ctx ...interface{}) {
	logger.Fatal("panic", zap.String("Crit", join(ctx)))
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = logger.Sync()
}

// Error handling
func HandleErr(err error) {
	if err != nil {
		Error(err)
	}
}
