package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	want := `{"recommendation":"hold weight","target_sets":3}`

	tests := []struct {
		name string
		in   string
	}{
		{"bare object", want},
		{"fenced", "```json\n" + want + "\n```"},
		{"fenced uppercase", "```JSON\n" + want + "\n```"},
		{"surrounded by prose", "Sure, here it is: " + want + " Hope that helps!"},
		{"leading whitespace", "\n\n  " + want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, ExtractJSONObject(tt.in))
		})
	}

	t.Run("braces inside strings do not confuse matching", func(t *testing.T) {
		in := `{"reasoning":"ramp up {slowly}","warning":null} trailing`
		assert.Equal(t, `{"reasoning":"ramp up {slowly}","warning":null}`, ExtractJSONObject(in))
	})

	t.Run("no object passes through", func(t *testing.T) {
		assert.Equal(t, "no json here", ExtractJSONObject("no json here"))
	})
}
