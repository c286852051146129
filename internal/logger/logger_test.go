package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(tt.level, &buf)

		log.Debug("debug %d", 1)
		assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("[DBG] debug 1")))

		log.Info("info %s", "x")
		assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte("[INF] info x")))
		assert.Equal(t, tt.level, log.GetLevel())
	}
}

func TestSetLevelAtRuntime(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)

	log.Warn("hidden")
	assert.Zero(t, buf.Len())

	log.SetLevel(LevelNormal)
	log.Warn("shown")
	assert.Contains(t, buf.String(), "[WRN] shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelOff, ParseLevel("off"))
	assert.Equal(t, LevelVerbose, ParseLevel("debug"))
	assert.Equal(t, LevelNormal, ParseLevel(""))
	assert.Equal(t, LevelNormal, ParseLevel("normal"))
}
