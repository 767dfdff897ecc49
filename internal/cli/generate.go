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

package cli

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwks/pkg/encoding"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

var (
	generateType         string
	generateKID          string
	generateAutoKID      bool
	generatePKCS8        bool
	generateOut          string
	generatePasswordFile string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new signing key",
	Long: `Generate a new private key and write it as PEM.

The key is written in its native encoding (PKCS#1 for RSA, SEC1 for
EC) unless --pkcs8 is given. With --password-file the key is written
as an encrypted PKCS#8 container instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := generateKey(generateType)
		if err != nil {
			return err
		}

		kid := generateKID
		if generateAutoKID {
			kid = uuid.NewString()
		}
		if kid != "" {
			logger.Info("generated key", "type", generateType, "kid", kid)
		} else {
			logger.Info("generated key", "type", generateType)
		}

		pemData, err := encodeKey(key)
		if err != nil {
			return err
		}
		defer encoding.Zeroize(pemData)

		if generateOut == "" || generateOut == "-" {
			_, err = os.Stdout.Write(pemData)
			return err
		}
		if err := os.WriteFile(generateOut, pemData, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", generateOut, err)
		}
		logger.Debugf("wrote %d PEM bytes to %s", len(pemData), generateOut)
		if kid != "" {
			fmt.Println(kid)
		}
		return nil
	},
}

func generateKey(keyType string) (keys.PrivateKey, error) {
	switch keyType {
	case "rsa":
		return keys.GenerateRSA(rand.Reader)
	case "p256":
		return keys.GenerateECP256(rand.Reader)
	case "p384":
		return keys.GenerateECP384(rand.Reader)
	case "k256":
		return keys.GenerateECK256(rand.Reader)
	default:
		return nil, fmt.Errorf("unknown key type %q (rsa, p256, p384, k256)", keyType)
	}
}

func encodeKey(key keys.PrivateKey) ([]byte, error) {
	if generatePasswordFile != "" {
		password, err := readPasswordFile(generatePasswordFile)
		if err != nil {
			return nil, err
		}
		defer encoding.Zeroize(password)
		return encoding.EncodeEncryptedPKCS8PEM(key, password)
	}
	if generatePKCS8 {
		return encoding.EncodePKCS8PEM(key)
	}
	return encoding.EncodePEM(key)
}

func init() {
	generateCmd.Flags().StringVarP(&generateType, "type", "t", "rsa",
		"key type (rsa, p256, p384, k256)")
	generateCmd.Flags().StringVar(&generateKID, "kid", "",
		"key id to associate with the key")
	generateCmd.Flags().BoolVar(&generateAutoKID, "auto-kid", false,
		"generate a random UUID key id")
	generateCmd.Flags().BoolVar(&generatePKCS8, "pkcs8", false,
		"write PKCS#8 instead of the native encoding")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "-",
		"output file (- for stdout)")
	generateCmd.Flags().StringVar(&generatePasswordFile, "password-file", "",
		"encrypt the key with the passphrase read from this file")
}
