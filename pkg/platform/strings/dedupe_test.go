package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"keeps first occurrence order", []string{"beta", "alpha", "beta"}, []string{"beta", "alpha"}},
		{"whitespace is significant", []string{"ns", " ns"}, []string{"ns", " ns"}},
		{"empty string is a value", []string{"", ""}, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.in))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "buffer_size", ToSnakeCase("BufferSize"))
	assert.Equal(t, "namespaces", ToSnakeCase("Namespaces"))
	assert.Equal(t, "http_status", ToSnakeCase("HTTPStatus"))
}
