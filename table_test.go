package eol_test

import (
	"testing"

	"github.com/eolchecker/eol"
	"github.com/stretchr/testify/assert"
)

func TestRawRow(t *testing.T) {
	t.Parallel()

	t.Run("gets cells by header key", func(t *testing.T) {
		t.Parallel()

		row := eol.RawRow{Keys: []string{"model", "eol"}, Cells: []string{"X1", "2020-01-01"}}

		v, ok := row.Get("eol")
		assert.True(t, ok)
		assert.Equal(t, "2020-01-01", v)

		_, ok = row.Get("missing")
		assert.False(t, ok)
		assert.False(t, row.Positional())
		assert.Equal(t, map[string]string{"model": "X1", "eol": "2020-01-01"}, row.Map())
	})

	t.Run("first column wins for repeated labels", func(t *testing.T) {
		t.Parallel()

		row := eol.RawRow{Keys: []string{"model", "model"}, Cells: []string{"first", "second"}}

		v, _ := row.Get("model")
		assert.Equal(t, "first", v)
		assert.Equal(t, map[string]string{"model": "first"}, row.Map())
	})

	t.Run("positional rows have no keys", func(t *testing.T) {
		t.Parallel()

		row := eol.RawRow{Cells: []string{"X1", "2020-01-01"}}

		assert.True(t, row.Positional())
		assert.Nil(t, row.Map())
		_, ok := row.Get("model")
		assert.False(t, ok)
	})
}
