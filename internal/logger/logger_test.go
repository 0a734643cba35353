package logger

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("item-store")
	require.NotNil(t, entry)
	assert.Equal(t, "item-store", entry.Data["component"])
}

func TestLoggerInit(t *testing.T) {
	require.NotNil(t, Logger)
	assert.Equal(t, os.Stdout, Logger.Out)
}

func TestWithComponentMultiple(t *testing.T) {
	a := WithComponent("component-a")
	b := WithComponent("component-b")
	assert.NotEqual(t, a.Data["component"], b.Data["component"])
}

func TestApplyLevel(t *testing.T) {
	orig := Logger.GetLevel()
	t.Cleanup(func() { Logger.SetLevel(orig) })
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name     string
		value    string
		expected logrus.Level
		wantErr  bool
	}{
		{"debug", "debug", logrus.DebugLevel, false},
		{"uppercase", "WARN", logrus.WarnLevel, false},
		{"empty keeps level", "", logrus.InfoLevel, false},
		{"invalid keeps level", "loud", logrus.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger.SetLevel(logrus.InfoLevel)
			err := ApplyLevel(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, Logger.GetLevel())
		})
	}
}

func TestApplyLevel_EnvWins(t *testing.T) {
	orig := Logger.GetLevel()
	t.Cleanup(func() { Logger.SetLevel(orig) })
	t.Setenv("LOG_LEVEL", "error")

	Logger.SetLevel(logrus.ErrorLevel)
	require.NoError(t, ApplyLevel("debug"))
	assert.Equal(t, logrus.ErrorLevel, Logger.GetLevel())
}
