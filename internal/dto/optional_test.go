package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalThreeStates(t *testing.T) {
	type payload struct {
		Description Optional[string]  `json:"description"`
		Amount      Optional[float64] `json:"amount"`
	}

	t.Run("absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Description.Present)
		assert.False(t, p.Amount.Present)
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &p))
		assert.True(t, p.Description.Present)
		assert.True(t, p.Description.Null)
	})

	t.Run("value", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"description": "taxi", "amount": 12.5}`), &p))
		assert.True(t, p.Description.Present)
		assert.False(t, p.Description.Null)
		assert.Equal(t, "taxi", p.Description.Value)
		assert.True(t, p.Amount.Present)
		assert.Equal(t, 12.5, p.Amount.Value)
	})
}
