package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsObjectID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"lowercase hex", "68a1b2c3d4e5f6a7b8c9d0e1", true},
		{"uppercase hex", "68A1B2C3D4E5F6A7B8C9D0E1", true},
		{"mixed case", "68a1B2c3D4e5F6a7B8c9D0e1", true},
		{"too short", "68a1b2c3d4e5f6a7b8c9d0e", false},
		{"too long", "68a1b2c3d4e5f6a7b8c9d0e12", false},
		{"non-hex characters", "68a1b2c3d4e5f6a7b8c9d0ez", false},
		{"plain name", "Moleskine", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsObjectID(tt.input))
		})
	}
}

func TestDecodeRef_IDString(t *testing.T) {
	ref := DecodeRef(json.RawMessage(`"68a1b2c3d4e5f6a7b8c9d0e1"`), false)
	assert.Equal(t, RefID, ref.Kind)
	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", ref.ID)
	assert.Empty(t, ref.Name)
}

func TestDecodeRef_NameString(t *testing.T) {
	ref := DecodeRef(json.RawMessage(`"Faber-Castell"`), false)
	assert.Equal(t, RefNamed, ref.Kind)
	assert.Equal(t, "Faber-Castell", ref.Name)
}

func TestDecodeRef_PopulatedObject(t *testing.T) {
	ref := DecodeRef(json.RawMessage(`{"_id":"68a1b2c3d4e5f6a7b8c9d0e1","name":"Acme"}`), false)
	assert.Equal(t, RefNamed, ref.Kind)
	assert.Equal(t, "Acme", ref.Name)
	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", ref.ID)
}

func TestDecodeRef_ObjectWithoutName(t *testing.T) {
	ref := DecodeRef(json.RawMessage(`{"_id":"68a1b2c3d4e5f6a7b8c9d0e1"}`), false)
	assert.Equal(t, RefID, ref.Kind)
	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", ref.ID)
}

func TestDecodeRef_SlugFallback(t *testing.T) {
	raw := json.RawMessage(`{"_id":"68a1b2c3d4e5f6a7b8c9d0e1","slug":"notebooks"}`)

	withFallback := DecodeRef(raw, true)
	assert.Equal(t, RefNamed, withFallback.Kind)
	assert.Equal(t, "notebooks", withFallback.Name)

	withoutFallback := DecodeRef(raw, false)
	assert.Equal(t, RefID, withoutFallback.Kind)
}

func TestDecodeRef_AbsentAndNull(t *testing.T) {
	assert.Equal(t, RefUnresolved, DecodeRef(nil, false).Kind)
	assert.Equal(t, RefUnresolved, DecodeRef(json.RawMessage(`null`), false).Kind)
	assert.Equal(t, RefUnresolved, DecodeRef(json.RawMessage(`""`), false).Kind)
}
