package fingerprint

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContents is a spread of small inputs that differ in subtle ways
// (whitespace variants, single characters, empty).
var testContents = []string{
	" ",
	" 12p oka0sd k\n rn12w\r\r\n \t asof AWSDJO !@# @$ ",
	"",
	"12asdopjkzx",
	"2",
	"QxmPzHlMLisNDJm3LKT5LRoTyU9Z06ze",
	"\n",
	"\r",
	"\r\n",
	"\t",
	"g",
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSize(t *testing.T) {
	dir := t.TempDir()
	for i, content := range testContents {
		path := writeFile(t, dir, fmt.Sprintf("f%02d", i), content)
		size, err := Size(path)
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), size, "content %q", content)
	}
}

func TestSizeMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Size(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}

func TestChecksumDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "f", "some stable content\n")

	first, err := Checksum(path)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		again, err := Checksum(path)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestChecksumDistinctContents(t *testing.T) {
	dir := t.TempDir()
	seen := make(map[Digest]string, len(testContents))
	for i, content := range testContents {
		path := writeFile(t, dir, fmt.Sprintf("f%02d", i), content)
		digest, err := Checksum(path)
		require.NoError(t, err)
		if prev, dup := seen[digest]; dup {
			t.Fatalf("contents %q and %q collided", prev, content)
		}
		seen[digest] = content
	}
}

func TestChecksumIdenticalContents(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "same bytes")
	b := writeFile(t, dir, "b", "same bytes")

	da, err := Checksum(a)
	require.NoError(t, err)
	db, err := Checksum(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

// Contents longer than the read buffer exercise the chunked streaming
// path; a flipped byte past the first chunk must change the digest.
func TestChecksumBeyondOneBuffer(t *testing.T) {
	dir := t.TempDir()
	content := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 16 KiB

	a := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(a, content, 0o644))
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(b, content, 0o644))

	mutated := bytes.Clone(content)
	mutated[len(mutated)-1] ^= 0xff
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(c, mutated, 0o644))

	da, err := Checksum(a)
	require.NoError(t, err)
	db, err := Checksum(b)
	require.NoError(t, err)
	dc, err := Checksum(c)
	require.NoError(t, err)

	assert.Equal(t, da, db)
	assert.NotEqual(t, da, dc)
}

func TestChecksumMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Checksum(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}
