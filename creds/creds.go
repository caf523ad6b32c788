// Copyright © 2024 The vmshuttle authors

// Package creds resolves vCenter passwords. A password can come from the
// environment, from a passphrase-encrypted credentials file, or from an
// interactive prompt, in that order of preference.
package creds

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/term"
)

const (
	saltSize  = 32
	nonceSize = 24
	keySize   = 32

	// scrypt cost parameters
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func deriveKey(passphrase, salt []byte) (*[keySize]byte, error) {
	raw, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// Encrypt seals the password with a key derived from the passphrase.
// The output carries its own salt and nonce: salt || nonce || box.
func Encrypt(password string, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce")
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltSize+nonceSize+len(password)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, []byte(password), &nonce, key), nil
}

// Decrypt reverses Encrypt. A wrong passphrase or a tampered file both
// fail authentication.
func Decrypt(data, passphrase []byte) (string, error) {
	if len(data) < saltSize+nonceSize+secretbox.Overhead {
		return "", errors.New("credentials data is truncated")
	}
	salt := data[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return "", err
	}
	password, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return "", errors.New("failed to decrypt credentials: wrong passphrase or corrupt file")
	}
	return string(password), nil
}

// WriteFile encrypts the password and writes it readable only by the
// owner.
func WriteFile(path, password string, passphrase []byte) error {
	data, err := Encrypt(password, passphrase)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write credentials file %s", path)
	}
	return nil
}

// ReadFile decrypts a file written by WriteFile.
func ReadFile(path string, passphrase []byte) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read credentials file %s", path)
	}
	return Decrypt(data, passphrase)
}

// PromptSecret reads a line from the terminal without echoing it.
func PromptSecret(label string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read from terminal")
	}
	return secret, nil
}

// ResolvePassword returns the password for the named endpoint. The
// environment value wins when set; otherwise the credentials file is
// decrypted after prompting for its passphrase; with neither available
// the password itself is prompted for.
func ResolvePassword(endpoint, envValue, credsPath string) (string, error) {
	if envValue != "" {
		return envValue, nil
	}
	if credsPath != "" {
		passphrase, err := PromptSecret(fmt.Sprintf("Passphrase for %s", credsPath))
		if err != nil {
			return "", err
		}
		return ReadFile(credsPath, passphrase)
	}
	secret, err := PromptSecret(fmt.Sprintf("Password for %s", endpoint))
	if err != nil {
		return "", err
	}
	if len(secret) == 0 {
		return "", errors.Errorf("no password provided for %s", endpoint)
	}
	return string(secret), nil
}
