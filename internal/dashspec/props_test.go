package dashspec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropBag_PreservesInsertionOrder(t *testing.T) {
	var b PropBag
	b.Set("zeta", 1)
	b.Set("alpha", 2)
	b.Set("mid", 3)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, b.Keys())

	// Overwriting keeps the original position.
	b.Set("alpha", 9)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, b.Keys())

	b.Delete("alpha")
	assert.Equal(t, []string{"zeta", "mid"}, b.Keys())
}

func TestPropBag_JSONRoundTripKeepsOrder(t *testing.T) {
	in := []byte(`{"title":"Revenue","color":"#fff","fontSize":12,"nested":{"a":1}}`)

	var b PropBag
	require.NoError(t, json.Unmarshal(in, &b))
	assert.Equal(t, []string{"title", "color", "fontSize", "nested"}, b.Keys())

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
	// Byte order matters for deterministic output, not just equivalence.
	assert.Equal(t, string(in), string(out))
}

func TestPropBag_UnmarshalNull(t *testing.T) {
	var b PropBag
	require.NoError(t, json.Unmarshal([]byte(`null`), &b))
	assert.Equal(t, 0, b.Len())
}

func TestPropBag_UnmarshalRejectsNonObject(t *testing.T) {
	var b PropBag
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &b))
}

func TestPropBag_Missing(t *testing.T) {
	var b PropBag
	b.Set("empty", "")
	b.Set("null", nil)
	b.Set("zero", float64(0))
	b.Set("present", "x")

	assert.True(t, b.Missing("absent"))
	assert.True(t, b.Missing("empty"))
	assert.True(t, b.Missing("null"))
	assert.False(t, b.Missing("zero"))
	assert.False(t, b.Missing("present"))
}

func TestPropBag_Truthy(t *testing.T) {
	var b PropBag
	b.Set("bool", true)
	b.Set("str", "true")
	b.Set("num", float64(1))
	b.Set("off", false)
	b.Set("other", "yes")

	assert.True(t, b.Truthy("bool"))
	assert.True(t, b.Truthy("str"))
	assert.True(t, b.Truthy("num"))
	assert.False(t, b.Truthy("off"))
	assert.False(t, b.Truthy("other"))
	assert.False(t, b.Truthy("absent"))
}

func TestPropBag_TypedAccessors(t *testing.T) {
	var b PropBag
	b.Set("s", "text")
	b.Set("n", float64(3))

	s, ok := b.GetString("s")
	assert.True(t, ok)
	assert.Equal(t, "text", s)
	_, ok = b.GetString("n")
	assert.False(t, ok)

	n, ok := b.GetNumber("n")
	assert.True(t, ok)
	assert.Equal(t, float64(3), n)
	_, ok = b.GetNumber("s")
	assert.False(t, ok)
}
