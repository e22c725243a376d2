package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetConfirmation(t *testing.T) {
	at := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

	row := &ConfirmationUser{}
	SetConfirmation(row, true, at)
	assert.True(t, row.Status)
	require.NotNil(t, row.ConfirmedAt)
	assert.Equal(t, at, *row.ConfirmedAt)

	SetConfirmation(row, false, at.Add(time.Hour))
	assert.False(t, row.Status)
	assert.Nil(t, row.ConfirmedAt)

	t.Run("confirming twice restamps", func(t *testing.T) {
		row := &ConfirmationUser{}
		SetConfirmation(row, true, at)
		SetConfirmation(row, true, at.Add(time.Minute))
		assert.Equal(t, at.Add(time.Minute), *row.ConfirmedAt)
	})
}
