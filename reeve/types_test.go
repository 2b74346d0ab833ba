package reeve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonFromMap(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		person := PersonFromMap(map[string]any{
			"id":        float64(12),
			"firstname": "John",
			"lastname":  "Doe",
			"createdAt": "2024-03-01T10:30:00Z",
		})

		assert.Equal(t, 12, person.ID)
		assert.Equal(t, "John", person.Firstname)
		assert.Equal(t, "Doe", person.Lastname)
		require.NotNil(t, person.CreatedAt)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), person.CreatedAt.UTC())
		assert.Nil(t, person.UpdatedAt)
	})

	t.Run("absent timestamps map to nil", func(t *testing.T) {
		person := PersonFromMap(map[string]any{"id": float64(1)})
		assert.Nil(t, person.CreatedAt)
		assert.Nil(t, person.UpdatedAt)
	})

	t.Run("unparseable timestamp maps to nil", func(t *testing.T) {
		person := PersonFromMap(map[string]any{"id": float64(1), "createdAt": "yesterday"})
		assert.Nil(t, person.CreatedAt)
	})
}

func TestFaceFromMap(t *testing.T) {
	face := FaceFromMap(map[string]any{
		"id":        float64(3),
		"path":      "/faces/3.jpg",
		"personId":  float64(12),
		"updatedAt": "2024-05-10T08:00:00Z",
	})

	assert.Equal(t, 3, face.ID)
	assert.Equal(t, "/faces/3.jpg", face.Path)
	assert.Equal(t, 12, face.PersonID)
	require.NotNil(t, face.UpdatedAt)
	assert.Nil(t, face.CreatedAt)
}

func TestIdentifyResultReadsMisspelledThresholdKey(t *testing.T) {
	result := IdentifyResultFromMap(map[string]any{
		"name":         "Jane",
		"thresold":     float64(48),
		"score":        float64(130),
		"isMatchFound": true,
	})

	assert.Equal(t, 48, result.Threshold)
	assert.Equal(t, 130, result.Score)
	assert.True(t, result.IsMatchFound)

	// The corrected spelling is never read from the wire.
	corrected := IdentifyResultFromMap(map[string]any{"threshold": float64(99)})
	assert.Zero(t, corrected.Threshold)
}

func TestEnvelopeFromMap(t *testing.T) {
	t.Run("explicit success", func(t *testing.T) {
		resp := envelopeFromMap(map[string]any{
			"success":    true,
			"result":     []any{},
			"statusCode": float64(200),
			"timestamp":  "1759315300",
		})
		assert.True(t, resp.Success)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "1759315300", resp.Timestamp)
	})

	t.Run("success defaults from error presence", func(t *testing.T) {
		assert.True(t, envelopeFromMap(map[string]any{"result": "ok"}).Success)
		assert.False(t, envelopeFromMap(map[string]any{"error": "nope"}).Success)
	})
}

func TestFaceAttributesFromMap(t *testing.T) {
	attrs := FaceAttributesFromMap(map[string]any{
		"age":         "33",
		"gender":      "Male",
		"mouthOpen":   "False",
		"darkGlasses": "False",
		"faceMask":    "True",
	})

	assert.Equal(t, "33", attrs.Age)
	assert.Equal(t, "Male", attrs.Gender)
	assert.Equal(t, "False", attrs.MouthOpen)
	assert.Equal(t, "False", attrs.DarkGlasses)
	assert.Equal(t, "True", attrs.FaceMask)
	assert.Empty(t, attrs.Beard)
}
