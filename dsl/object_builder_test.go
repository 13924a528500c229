package dsl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
)

func TestObjectBuilder_Chain(t *testing.T) {
	n, err := dsl.Object().
		Field("name", dsl.String()).Required().
		Field("age", dsl.Int()).Default(func() any { return int64(0) }).
		Field("note", dsl.String()).Optional().
		Build()
	require.NoError(t, err)

	got, err := goshape.Decode(context.Background(), n, map[string]any{"name": "ada"})
	require.NoError(t, err)
	m := got.(map[string]any)
	assert.Equal(t, "ada", m["name"])
	assert.Equal(t, int64(0), m["age"])
	assert.NotContains(t, m, "note")
}

func TestObjectBuilder_RenameThenPolicy(t *testing.T) {
	n, err := dsl.Object().
		Field("userID", dsl.String()).Rename("user_id").Required().
		Build()
	require.NoError(t, err)

	got, err := goshape.Decode(context.Background(), n, map[string]any{"user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.(map[string]any)["userID"])
}

func TestObjectBuilder_DuplicateField(t *testing.T) {
	_, err := dsl.Object().
		Field("a", dsl.String()).Required().
		Field("a", dsl.Int()).Required().
		Build()
	require.Error(t, err)
}

func TestObjectBuilder_Empty(t *testing.T) {
	_, err := dsl.Object().Build()
	require.Error(t, err)
}

func TestObjectBuilder_FieldStepShortcut(t *testing.T) {
	// A field left on its step is required by default when Build is called
	// straight off the step.
	n := dsl.Object().
		Field("a", dsl.String()).
		MustBuild()
	_, err := goshape.Decode(context.Background(), n, map[string]any{})
	require.Error(t, err)
}
