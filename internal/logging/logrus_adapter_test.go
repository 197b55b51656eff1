package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogrusAdapter_InvalidLevelFallsBack(t *testing.T) {
	logger := NewLogrusAdapter("bogus", "text")
	assert.NotNil(t, logger)
}

func TestAdapterWritesFields(t *testing.T) {
	underlying := logrus.New()
	var buf bytes.Buffer
	underlying.SetOutput(&buf)
	underlying.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(underlying)
	logger.Info("parsed file", Field{Key: "count", Value: 3})

	out := buf.String()
	assert.Contains(t, out, "parsed file")
	assert.Contains(t, out, `"count":3`)
}

func TestWithErrorAndWithField(t *testing.T) {
	underlying := logrus.New()
	var buf bytes.Buffer
	underlying.SetOutput(&buf)
	underlying.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(underlying)
	logger.WithError(errors.New("boom")).WithField("file", "a.csv").Error("import failed")

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "a.csv")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	assert.NotNil(t, logger)
}
