package swiftpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Alternation(t *testing.T) {
	assert.NoError(t, Validate(Params{"a": 1, "c": 1}, "a", "b|c"))

	err := Validate(Params{"a": 1}, "a", "b|c")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"b|c"}, e.Missing)
	assert.Contains(t, e.Error(), "b|c")
}

func TestValidate_CollectsAllGroups(t *testing.T) {
	err := Validate(Params{}, "a", "b|c", "d")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"a", "b|c", "d"}, e.Missing)
}

func TestValidate_Truthiness(t *testing.T) {
	for name, v := range map[string]interface{}{
		"nil":          nil,
		"empty string": "",
		"zero":         0,
		"zero int64":   int64(0),
		"false":        false,
	} {
		assert.Error(t, Validate(Params{"a": v}, "a"), name)
	}
	for name, v := range map[string]interface{}{
		"string":      "x",
		"zero string": "0",
		"number":      12,
		"true":        true,
	} {
		assert.NoError(t, Validate(Params{"a": v}, "a"), name)
	}
}
