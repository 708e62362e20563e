package actuator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSlotMap_DefaultWhenUnset(t *testing.T) {
	slots, err := LoadSlotMap("")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 17, 2: 27, 3: 22, 4: 23, 5: 24, 6: 25}, slots)
}

func TestLoadSlotMap_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slots:\n  1: 17\n  7: 14\n"), 0o600))

	slots, err := LoadSlotMap(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 17, 7: 14}, slots)
}

func TestParseSlotMap_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: "slots: {}\n"},
		{name: "zero slot", raw: "slots:\n  0: 17\n"},
		{name: "line out of range", raw: "slots:\n  1: 40\n"},
		{name: "shared line", raw: "slots:\n  1: 17\n  2: 17\n"},
		{name: "not yaml", raw: "slots: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlotMap([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadSlotMap_MissingFile(t *testing.T) {
	_, err := LoadSlotMap(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
