package docdex_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacetValue_JSON(t *testing.T) {
	t.Parallel()

	t.Run("string facet serializes as a bare string", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(docdex.StringFacet("community"))

		require.NoError(t, err)
		assert.JSONEq(t, `"community"`, string(data))
	})

	t.Run("set facet serializes as a string array", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(docdex.SetFacet("linux", "macos"))

		require.NoError(t, err)
		assert.JSONEq(t, `["linux","macos"]`, string(data))
	})

	t.Run("decodes a bare string", func(t *testing.T) {
		t.Parallel()

		var v docdex.FacetValue
		require.NoError(t, json.Unmarshal([]byte(`"text"`), &v))

		assert.False(t, v.IsSet())
		assert.Equal(t, "text", v.Value)
	})

	t.Run("decodes a string array", func(t *testing.T) {
		t.Parallel()

		var v docdex.FacetValue
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &v))

		assert.True(t, v.IsSet())
		assert.Equal(t, []string{"a", "b"}, v.Values)
	})

	t.Run("rejects an object value", func(t *testing.T) {
		t.Parallel()

		var v docdex.FacetValue
		assert.Error(t, json.Unmarshal([]byte(`{"k":"v"}`), &v))
	})

	t.Run("round-trips inside a record facet map", func(t *testing.T) {
		t.Parallel()

		rec := &docdex.DocumentRecord{
			ID:    "a",
			Title: "t",
			Facets: map[string]docdex.FacetValue{
				"platform": docdex.SetFacet("linux"),
				"edition":  docdex.StringFacet("pro"),
			},
		}

		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var got docdex.DocumentRecord
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, rec.Facets, got.Facets)
	})
}
