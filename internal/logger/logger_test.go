package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("warn").GetLevel())
	assert.Equal(t, logrus.ErrorLevel, New("error").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("bogus").GetLevel())
}

func TestNewWritesRenamedFields(t *testing.T) {
	log := New("info")
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithField("question_id", 3).Info("vote recorded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vote recorded", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, float64(3), entry["question_id"])
}
