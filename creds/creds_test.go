// Copyright © 2024 The vmshuttle authors

package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	data, err := Encrypt("s3cret-vc-password", []byte("passphrase"))
	assert.NoError(t, err)

	password, err := Decrypt(data, []byte("passphrase"))
	assert.NoError(t, err)
	assert.Equal(t, "s3cret-vc-password", password)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	data, err := Encrypt("s3cret-vc-password", []byte("passphrase"))
	assert.NoError(t, err)

	_, err = Decrypt(data, []byte("not-the-passphrase"))
	assert.ErrorContains(t, err, "wrong passphrase")
}

func TestDecryptTruncated(t *testing.T) {
	_, err := Decrypt([]byte("too short"), []byte("passphrase"))
	assert.ErrorContains(t, err, "truncated")
}

func TestEncryptIsSalted(t *testing.T) {
	first, err := Encrypt("same password", []byte("passphrase"))
	assert.NoError(t, err)
	second, err := Encrypt("same password", []byte("passphrase"))
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vc.creds")
	assert.NoError(t, WriteFile(path, "s3cret-vc-password", []byte("passphrase")))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	password, err := ReadFile(path, []byte("passphrase"))
	assert.NoError(t, err)
	assert.Equal(t, "s3cret-vc-password", password)
}

func TestResolvePasswordPrefersEnv(t *testing.T) {
	password, err := ResolvePassword("vcenter-a", "from-env", "/does/not/exist")
	assert.NoError(t, err)
	assert.Equal(t, "from-env", password)
}
