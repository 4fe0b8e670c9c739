package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionRequestValidate(t *testing.T) {
	t.Run("empty request is valid", func(t *testing.T) {
		assert.NoError(t, DecisionRequest{}.Validate())
	})

	t.Run("bad coordinate rejected", func(t *testing.T) {
		req := DecisionRequest{Location: &Coordinate{Lat: 95, Lon: 0}}
		assert.ErrorIs(t, req.Validate(), ErrInvalidRequest)
	})

	t.Run("bad profile rejected", func(t *testing.T) {
		req := DecisionRequest{Profile: &EmergencyProfile{Age: 150, BloodType: "O+"}}
		assert.ErrorIs(t, req.Validate(), ErrInvalidRequest)
	})
}

func TestNewDecisionID(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	req := DecisionRequest{Text: "ayuda", Location: &Coordinate{Lat: 24.0277, Lon: -104.6532}}

	id1 := NewDecisionID(req, at)
	id2 := NewDecisionID(req, at)

	require.Equal(t, id1, id2)
	assert.True(t, len(id1) > 4)
	assert.Equal(t, "dec-", id1[:4])

	other := NewDecisionID(DecisionRequest{Text: "otra cosa"}, at)
	assert.NotEqual(t, id1, other)
}
