package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretMatches(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		want     bool
	}{
		{name: "equal", provided: "s3cret", expected: "s3cret", want: true},
		{name: "different", provided: "wrong", expected: "s3cret", want: false},
		{name: "prefix", provided: "s3c", expected: "s3cret", want: false},
		{name: "empty provided", provided: "", expected: "s3cret", want: false},
		{name: "both empty", provided: "", expected: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SecretMatches(tc.provided, tc.expected))
		})
	}
}
