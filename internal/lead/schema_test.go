package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseSchema(t *testing.T) {
	schema := ResponseSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, properties, 10)

	required, ok := schema["required"].([]interface{})
	require.True(t, ok)
	assert.Len(t, required, len(FieldNames()))

	for _, name := range FieldNames() {
		assert.Contains(t, properties, name)
		assert.Contains(t, required, name)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Analysis{}.IsEmpty())
	assert.False(t, Analysis{Email: strPtr("a@b.com")}.IsEmpty())
}
