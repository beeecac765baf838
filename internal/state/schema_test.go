package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaReflectsFile(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "object", doc["type"])
	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "version")
	assert.Contains(t, props, "capabilities")
	assert.ElementsMatch(t, []interface{}{"version", "capabilities"}, doc["required"])
}

func TestValidateAcceptsWrittenShape(t *testing.T) {
	doc := map[string]interface{}{
		"version": 1,
		"capabilities": []interface{}{
			map[string]interface{}{"name": "ci", "version": "1.0.0"},
		},
	}
	assert.NoError(t, validate("installed.yaml", doc))
}
