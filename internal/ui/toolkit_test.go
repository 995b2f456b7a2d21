package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartWatchReportsUnstartedWindow(t *testing.T) {
	var w startWatch
	assert.ErrorIs(t, w.Err(), ErrToolkitUnavailable)

	w.Started()
	assert.NoError(t, w.Err())
}
