package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value any
		panic bool
	}{
		{name: "nil interface", value: nil, panic: true},
		{name: "nil pointer", value: (*int)(nil), panic: true},
		{name: "nil map", value: map[string]int(nil), panic: true},
		{name: "nil func", value: (func())(nil), panic: true},
		{name: "string", value: "ok"},
		{name: "zero int", value: 0},
		{name: "empty slice", value: []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := func() { Required(tt.value, "service.NewRouter", "store") }
			if tt.panic {
				assert.PanicsWithValue(t, "service.NewRouter: store is required", call)
				return
			}
			assert.NotPanics(t, call)
		})
	}
}
