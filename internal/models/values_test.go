package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"json number and int", json.Number("4"), 4, true},
		{"float and int", json.Number("4.0"), 4, true},
		{"different numbers", json.Number("3"), 4, false},
		{"string never equals number", "4", 4, false},
		{"strings", "auto", "auto", true},
		{"nil and nil", nil, nil, true},
		{"nil and zero", nil, 0, false},
		{"bools", true, true, true},
		{"bool never equals one", true, json.Number("1"), false},
		{"false never equals zero", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValuesEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, ValuesEqual(tt.b, tt.a))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "<none>", FormatValue(nil))
	assert.Equal(t, `"4"`, FormatValue("4"))
	assert.Equal(t, "4", FormatValue(json.Number("4")))
	assert.Equal(t, "2.5", FormatValue(2.5))
}
