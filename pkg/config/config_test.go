// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-jwks.
//
// go-jwks is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package config

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwks/pkg/encoding"
	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

func writeKeyPEM(t *testing.T, dir, name string, key keys.PrivateKey) string {
	t.Helper()
	pemData, err := encoding.EncodePEM(key)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, pemData, 0o600))
	return path
}

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jwks.yaml")

	cfg := Default()
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadKeystore(t *testing.T) {
	dir := t.TempDir()

	rsaKey, err := keys.GenerateRSA(rand.Reader)
	require.NoError(t, err)
	ecKey, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	cfg := &Config{Keystore: KeystoreConfig{Keys: []KeyConfig{
		{
			Path: writeKeyPEM(t, dir, "rsa.pem", rsaKey),
			KID:  "rsa-1",
			Use:  string(jose.UseSignature),
			Alg:  string(jose.RS256),
		},
		{
			Path: writeKeyPEM(t, dir, "ec.pem", ecKey),
			KID:  "ec-1",
		},
	}}}

	ks, err := cfg.LoadKeystore()
	require.NoError(t, err)
	require.Equal(t, 2, ks.Len())

	entries := ks.Entries()
	assert.Equal(t, "rsa-1", entries[0].KID())
	assert.Equal(t, jose.UseSignature, entries[0].Use())
	assert.Equal(t, jose.RS256, entries[0].Alg())
	assert.True(t, entries[0].Key().Equal(rsaKey))

	assert.Equal(t, "ec-1", entries[1].KID())
	assert.Empty(t, entries[1].Alg())
	assert.True(t, entries[1].Key().Equal(ecKey))
}

func TestLoadKeystoreEncryptedKey(t *testing.T) {
	dir := t.TempDir()

	ecKey, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	encrypted, err := encoding.EncodeEncryptedPKCS8PEM(ecKey, []byte("hunter2"))
	require.NoError(t, err)
	keyPath := filepath.Join(dir, "ec.pem")
	require.NoError(t, os.WriteFile(keyPath, encrypted, 0o600))

	// Trailing newline, as a shell redirect would leave it.
	passPath := filepath.Join(dir, "ec.pass")
	require.NoError(t, os.WriteFile(passPath, []byte("hunter2\n"), 0o600))

	cfg := &Config{Keystore: KeystoreConfig{Keys: []KeyConfig{
		{Path: keyPath, KID: "ec-1", PasswordFile: passPath},
	}}}

	ks, err := cfg.LoadKeystore()
	require.NoError(t, err)
	require.Equal(t, 1, ks.Len())
	assert.True(t, ks.Entries()[0].Key().Equal(ecKey))
}

func TestLoadKeystoreUnknownAlg(t *testing.T) {
	dir := t.TempDir()

	ecKey, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	cfg := &Config{Keystore: KeystoreConfig{Keys: []KeyConfig{
		{Path: writeKeyPEM(t, dir, "ec.pem", ecKey), Alg: "HS256"},
	}}}

	_, err = cfg.LoadKeystore()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown alg")
}

func TestLoadKeystoreMissingKeyFile(t *testing.T) {
	cfg := &Config{Keystore: KeystoreConfig{Keys: []KeyConfig{
		{Path: filepath.Join(t.TempDir(), "absent.pem")},
	}}}

	_, err := cfg.LoadKeystore()
	assert.Error(t, err)
}
