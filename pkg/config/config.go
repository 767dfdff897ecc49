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

// Package config loads the keystore manifest: a YAML file naming the
// private key files to load, with their key ids, usages and declared
// algorithms, plus optional password files for encrypted keys.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-jwks/pkg/encoding"
	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
	"github.com/jeremyhahn/go-jwks/pkg/keystore"
)

// KeyConfig describes one private key file in the manifest.
type KeyConfig struct {
	// Path is the private key file (PEM or DER).
	Path string `yaml:"path" mapstructure:"path"`

	// KID is the key id to declare for the key, if any.
	KID string `yaml:"kid,omitempty" mapstructure:"kid"`

	// Use is the declared usage (sig or enc), if any.
	Use string `yaml:"use,omitempty" mapstructure:"use"`

	// Alg fixes the key to a single algorithm, if set.
	Alg string `yaml:"alg,omitempty" mapstructure:"alg"`

	// PasswordFile points at a file holding the key's passphrase.
	// Its presence selects the encrypted loading path.
	PasswordFile string `yaml:"password_file,omitempty" mapstructure:"password_file"`
}

// KeystoreConfig is the keystore section of the manifest.
type KeystoreConfig struct {
	Keys []KeyConfig `yaml:"keys" mapstructure:"keys"`
}

// Config is the root of the manifest.
type Config struct {
	Keystore KeystoreConfig `yaml:"keystore" mapstructure:"keystore"`
}

// Default returns a sample manifest suitable for `jwks config init`.
func Default() *Config {
	return &Config{
		Keystore: KeystoreConfig{
			Keys: []KeyConfig{
				{
					Path: "/etc/jwks/keys/rsa.pem",
					KID:  "default",
					Use:  string(jose.UseSignature),
					Alg:  string(jose.RS256),
				},
			},
		},
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Write serializes the manifest as YAML to path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// LoadKeystore loads every key file named by the manifest and builds
// the keystore. Key material read from disk is zeroized before
// returning.
func (c *Config) LoadKeystore() (keystore.Keystore, error) {
	entries := make([]keystore.Entry, 0, len(c.Keystore.Keys))

	for _, kc := range c.Keystore.Keys {
		entry, err := loadEntry(kc)
		if err != nil {
			return keystore.Keystore{}, err
		}
		entries = append(entries, entry)
	}

	return keystore.New(entries...), nil
}

func loadEntry(kc KeyConfig) (keystore.Entry, error) {
	raw, err := os.ReadFile(kc.Path)
	if err != nil {
		return keystore.Entry{}, fmt.Errorf("config: read key %s: %w", kc.Path, err)
	}
	defer encoding.Zeroize(raw)

	key, err := loadKey(kc, raw)
	if err != nil {
		return keystore.Entry{}, fmt.Errorf("config: load key %s: %w", kc.Path, err)
	}

	entry := keystore.NewEntry(key)
	if kc.KID != "" {
		entry = entry.WithKID(kc.KID)
	}
	if kc.Use != "" {
		entry = entry.WithUse(jose.KeyUse(kc.Use))
	}
	if kc.Alg != "" {
		alg := jose.SignatureAlgorithm(kc.Alg)
		if !alg.Valid() {
			return keystore.Entry{}, fmt.Errorf("config: key %s: unknown alg %q", kc.Path, kc.Alg)
		}
		entry = entry.WithAlg(alg)
	}
	return entry, nil
}

func loadKey(kc KeyConfig, raw []byte) (keys.PrivateKey, error) {
	if kc.PasswordFile == "" {
		return encoding.Load(raw)
	}

	password, err := os.ReadFile(kc.PasswordFile)
	if err != nil {
		return nil, fmt.Errorf("read password %s: %w", kc.PasswordFile, err)
	}
	defer encoding.Zeroize(password)

	// Strip a single trailing newline, the common artifact of
	// password files written by editors and shell redirects.
	password = bytes.TrimRight(password, "\r\n")

	return encoding.LoadEncrypted(raw, password)
}
