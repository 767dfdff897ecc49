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
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwks/pkg/encoding"
	"github.com/jeremyhahn/go-jwks/pkg/jwk"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

var inspectPasswordFile string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Inspect a private key file",
	Long: `Load a private key file (PEM or DER) and print its key type,
curve, RFC 7638 thumbprint and the signature algorithms it supports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		defer encoding.Zeroize(raw)

		key, err := loadPossiblyEncrypted(raw, inspectPasswordFile)
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		pub, err := jwk.FromPrivateKey(key)
		if err != nil {
			return err
		}
		thumb, err := pub.Thumbprint()
		if err != nil {
			return err
		}

		fmt.Printf("Type:       %s\n", key.KTY())
		if curve := keyCurve(key); curve != "" {
			fmt.Printf("Curve:      %s\n", curve)
		}
		fmt.Printf("Thumbprint: %s\n", thumb)
		fmt.Printf("Algorithms: %s\n", strings.Join(algNames(key), ", "))
		return nil
	},
}

func loadPossiblyEncrypted(raw []byte, passwordFile string) (keys.PrivateKey, error) {
	if passwordFile == "" {
		key, err := encoding.Load(raw)
		if errors.Is(err, encoding.ErrEncrypted) {
			return nil, fmt.Errorf("%w (use --password-file)", err)
		}
		return key, err
	}

	password, err := readPasswordFile(passwordFile)
	if err != nil {
		return nil, err
	}
	defer encoding.Zeroize(password)
	return encoding.LoadEncrypted(raw, password)
}

func readPasswordFile(path string) ([]byte, error) {
	password, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read password file %s: %w", path, err)
	}
	return bytes.TrimRight(password, "\r\n"), nil
}

func keyCurve(key keys.PrivateKey) string {
	switch k := key.(type) {
	case *keys.ECP256:
		return k.Curve().String()
	case *keys.ECP384:
		return k.Curve().String()
	case *keys.ECK256:
		return k.Curve().String()
	default:
		return ""
	}
}

func algNames(key keys.PrivateKey) []string {
	algs := key.Algs()
	names := make([]string, len(algs))
	for i, a := range algs {
		names[i] = a.String()
	}
	return names
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPasswordFile, "password-file", "",
		"passphrase file for encrypted keys")
}
