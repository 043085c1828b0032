package chrome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseQuietlyAbsorbsTeardownErrors(t *testing.T) {
	assert.NotPanics(t, func() {
		closeQuietly("close browser", func() error {
			return errors.New("context canceled")
		})
	})
}

func TestCloseQuietlyRunsTheCloser(t *testing.T) {
	called := false
	closeQuietly("stop hijack router", func() error {
		called = true
		return nil
	})
	assert.True(t, called)
}
