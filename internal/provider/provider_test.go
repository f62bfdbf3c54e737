package provider

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &FetchError{Provider: "opentripmap", Err: cause}

	assert.Equal(t, "provider opentripmap: fetch failed: connection reset", err.Error())
	assert.True(t, errors.Is(err, cause))
}
