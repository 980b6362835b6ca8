package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInit_WritesPerLevelFiles(t *testing.T) {
	dir := t.TempDir()
	log, err := Init(config.LoggingConfig{Directory: dir, MaxSize: 1, MaxBackups: 1, MaxAge: 1})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Info("hello")
	log.Error("boom")
	_ = log.Sync()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, ",")
	if !strings.Contains(joined, "-info.log") || !strings.Contains(joined, "-error.log") {
		t.Fatalf("expected info and error files, got %v", names)
	}

	data, err := os.ReadFile(filepath.Join(dir, time.Now().Format("2006-01-02")+"-error.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hello") {
		t.Error("error file must not contain info entries")
	}
}

func TestParseGormLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent":  logger.Silent,
		"ERROR":   logger.Error,
		"warn":    logger.Warn,
		"info":    logger.Info,
		"unknown": logger.Warn,
	}
	for in, want := range tests {
		if got := ParseGormLevel(in); got != want {
			t.Errorf("ParseGormLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTrace_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := NewGormZapLogger(zap.New(core), "info")
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	gl.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)

	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 1 {
		t.Errorf("expected one error entry, got %d", n)
	}
	if n := logs.FilterMessage("GORM Trace [SLOW]").Len(); n != 1 {
		t.Errorf("expected one slow entry, got %d", n)
	}

	silent := gl.LogMode(logger.Silent)
	before := logs.Len()
	silent.Trace(context.Background(), time.Now(), sql, errors.New("ignored"))
	if logs.Len() != before {
		t.Error("silent logger must not emit")
	}
}
