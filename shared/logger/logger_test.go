package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "empty defaults to info", raw: "", want: zap.InfoLevel},
		{name: "debug", raw: "debug", want: zap.DebugLevel},
		{name: "case insensitive", raw: " WARN ", want: zap.WarnLevel},
		{name: "unknown falls back", raw: "verbose", want: zap.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := parseLevel(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, level.Level())
		})
	}
}

func TestNormalizeEncoding(t *testing.T) {
	assert.Equal(t, EncodingConsole, normalizeEncoding("Console"))
	assert.Equal(t, EncodingJSON, normalizeEncoding("json"))
	assert.Equal(t, EncodingJSON, normalizeEncoding("xml"))
	assert.Equal(t, EncodingJSON, normalizeEncoding(""))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "service.log")

	log, err := New(Config{Level: "info", Encoding: "json", OutputPath: out})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible", zap.String("component", "test"))
	_ = log.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"visible"`)
	assert.Contains(t, content, `"component":"test"`)
	assert.Contains(t, content, `"level":"INFO"`)
	assert.Contains(t, content, `"timestamp"`)
	assert.False(t, strings.Contains(content, "hidden"))
}
