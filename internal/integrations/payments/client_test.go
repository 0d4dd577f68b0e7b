package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSimulatedMode(t *testing.T) {
	client := NewClient("", nopLogger{})

	assert.True(t, client.Simulated())
}

func TestCreateIntentSimulated(t *testing.T) {
	client := NewClient("", nopLogger{})

	intent, err := client.CreateIntent(context.Background(), 3000, "mia@example.com", "Booking deposit")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.ID, "pi_"))
	// pi_ плюс 12 случайных байт в hex
	assert.Len(t, intent.ID, 3+24)
	assert.Equal(t, simulatedStatus, intent.Status)
	assert.Equal(t, int64(3000), intent.AmountCents)
}

func TestCreateIntentSimulatedUniqueIDs(t *testing.T) {
	client := NewClient("", nopLogger{})

	first, err := client.CreateIntent(context.Background(), 1000, "a@example.com", "x")
	require.NoError(t, err)
	second, err := client.CreateIntent(context.Background(), 1000, "a@example.com", "x")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateIntentInvalidAmount(t *testing.T) {
	client := NewClient("", nopLogger{})

	_, err := client.CreateIntent(context.Background(), 0, "mia@example.com", "x")

	assert.ErrorIs(t, err, ErrInvalidAmount)
}
