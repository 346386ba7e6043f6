package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	tests := []struct {
		name        string
		level       string
		development bool
		wantErr     bool
	}{
		{name: "production info", level: "info"},
		{name: "development debug", level: "debug", development: true},
		{name: "unknown level", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Initialize(tt.level, tt.development)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, Log)
		})
	}
}
