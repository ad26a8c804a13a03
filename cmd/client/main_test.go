package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAudio(t *testing.T) {
	dir := t.TempDir()

	name, err := saveAudio(dir, []byte{1, 2, 3})
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
}

func TestSaveAudioFailure(t *testing.T) {
	_, err := saveAudio(filepath.Join(t.TempDir(), "missing"), []byte{1, 2, 3})
	require.Error(t, err)
}
