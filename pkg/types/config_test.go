package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "empty backend", config: Config{DataDir: "/tmp/data"}, wantErr: ErrBackendEmpty},
		{name: "unknown backend", config: Config{Backend: "postgres"}, wantErr: ErrBackendUnknown},
		{name: "backend names are case sensitive", config: Config{Backend: "SQLite"}, wantErr: ErrBackendUnknown},
		{name: "memory needs no data dir", config: Config{Backend: BackendMemory}},
	}
	for _, b := range Backends {
		tests = append(tests, struct {
			name    string
			config  Config
			wantErr error
		}{name: b, config: Config{Backend: b, DataDir: "/tmp/data"}})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestKnownKeysCoverPageCollections(t *testing.T) {
	for _, key := range PageCollections {
		assert.Contains(t, KnownKeys, key)
	}
}
