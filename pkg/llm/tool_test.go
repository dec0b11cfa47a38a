package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolBuilder(t *testing.T) {
	tool, err := NewTool().
		Name("get_weather").
		Description("Get the current weather in a given location").
		AddParameter("location", "string", "The city and state, e.g. San Francisco, CA", true).
		AddEnumParameter("unit", "The unit of temperature to use", false, []string{"celsius", "fahrenheit"}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "get_weather", tool.Name)
	assert.Equal(t, "Get the current weather in a given location", tool.Description)
	require.Len(t, tool.Parameters, 2)

	location := tool.Parameters[0]
	assert.Equal(t, "location", location.Name)
	assert.Equal(t, "string", location.Type)
	assert.True(t, location.Required)
	assert.Nil(t, location.Enum)

	unit := tool.Parameters[1]
	assert.Equal(t, "unit", unit.Name)
	assert.Equal(t, "string", unit.Type)
	assert.False(t, unit.Required)
	assert.Equal(t, []string{"celsius", "fahrenheit"}, unit.Enum)
}

func TestToolBuilder_MissingName(t *testing.T) {
	_, err := NewTool().
		Description("Get the current weather in a given location").
		Build()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "name")
}

func TestToolBuilder_MissingDescription(t *testing.T) {
	_, err := NewTool().
		Name("get_weather").
		Build()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "description")
}

func TestToolBuilder_DuplicateParameter(t *testing.T) {
	_, err := NewTool().
		Name("get_weather").
		Description("Get the current weather").
		AddParameter("location", "string", "first", true).
		AddParameter("location", "string", "second", false).
		Build()
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "location")
}

func TestToolBuilder_ZeroParameters(t *testing.T) {
	tool, err := NewTool().
		Name("get_time").
		Description("Get the current UTC time").
		Build()
	require.NoError(t, err)
	assert.Empty(t, tool.Parameters)
}

func TestToolBuilder_ValueSemantics(t *testing.T) {
	base := NewTool().Name("base").Description("shared prefix")

	a, err := base.AddParameter("alpha", "string", "first branch", true).Build()
	require.NoError(t, err)
	b, err := base.AddParameter("beta", "string", "second branch", true).Build()
	require.NoError(t, err)

	// Branching off one builder must not let the two definitions bleed
	// into each other.
	require.Len(t, a.Parameters, 1)
	require.Len(t, b.Parameters, 1)
	assert.Equal(t, "alpha", a.Parameters[0].Name)
	assert.Equal(t, "beta", b.Parameters[0].Name)
}
