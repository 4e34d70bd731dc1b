package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PipelineConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     PipelineConfig{APIKey: "key", SeedVideoIDs: []string{"v1"}},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     PipelineConfig{SeedVideoIDs: []string{"v1"}},
			wantErr: true,
		},
		{
			name:    "blank API key",
			cfg:     PipelineConfig{APIKey: "   ", SeedVideoIDs: []string{"v1"}},
			wantErr: true,
		},
		{
			name:    "no seed videos",
			cfg:     PipelineConfig{APIKey: "key"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain list",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "whitespace trimmed",
			input: " a , b ,c ",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty items dropped",
			input: "a,,b,",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.input))
		})
	}
}

func TestReadIDsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	content := "v1\n\n# comment line\n  v2  \nv3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ids, err := ReadIDsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v3"}, ids)
}

func TestReadIDsFromFile_Missing(t *testing.T) {
	_, err := ReadIDsFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	assert.Len(t, id, 14)
}
