package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKeepsDocumentOrder(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`), &obj))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	mid, ok := obj.Get("mid")
	require.True(t, ok)
	nested, err := mid.Object()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, nested.Keys())
}

func TestObjectRepeatedKeyKeepsFirstPosition(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &obj))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ := obj.Get("a")
	s, err := v.Scalar()
	require.NoError(t, err)
	assert.Equal(t, "3", s)
}

func TestObjectNullAndEmpty(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`null`), &obj))
	assert.Nil(t, obj)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &obj))
	assert.NotNil(t, obj)
	assert.Empty(t, obj)
}

func TestObjectRejectsNonObject(t *testing.T) {
	var obj Object
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &obj))
}

func TestObjectMarshalRoundTripsOrder(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"FOO": "BAR", "BAR": "BAZ"}`), &obj))

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"FOO":"BAR","BAR":"BAZ"}`, string(out))
}

func TestValueScalar(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"local"`, "local"},
		{`123`, "123"},
		{`-7`, "-7"},
		{`123.0`, "123"},
		{`1e2`, "100"},
		{`1.5`, "1.5"},
		{`true`, "true"},
		{`false`, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NewValue(tt.raw).Scalar()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueScalarRejectsCompositeValues(t *testing.T) {
	for _, raw := range []string{`{"a": 1}`, `[1]`, `null`} {
		_, err := NewValue(raw).Scalar()
		assert.ErrorIs(t, err, ErrNotScalar, raw)
	}
}

func TestValueTruthy(t *testing.T) {
	assert.True(t, NewValue(`true`).Truthy())
	assert.True(t, NewValue(`"true"`).Truthy())
	assert.True(t, NewValue(`"1"`).Truthy())
	assert.False(t, NewValue(`false`).Truthy())
	assert.False(t, NewValue(`"false"`).Truthy())
	assert.False(t, NewValue(`"yes please"`).Truthy())
	assert.False(t, NewValue(`null`).Truthy())
	assert.False(t, NewValue(`1`).Truthy())
}

func TestValueNullDetection(t *testing.T) {
	assert.True(t, NewValue(`null`).IsNull())
	assert.True(t, Value{}.IsNull())
	assert.False(t, NewValue(`0`).IsNull())
}
