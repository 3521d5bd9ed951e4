package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8080", ":8080"},
		{" 8080 ", ":8080"},
		{":9000", ":9000"},
	}

	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ListenAddr("  ")
	assert.Error(t, err)
}
