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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwks/pkg/config"
	"github.com/jeremyhahn/go-jwks/pkg/encoding"
	"github.com/jeremyhahn/go-jwks/pkg/keystore"
)

var (
	exportConfig  string
	exportAutoKID bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [FILE...]",
	Short: "Export the public JWK Set",
	Long: `Build the public JWK Set document from key files or from a
manifest and print it as JSON.

With --config the keystore manifest supplies the key files and their
attributes. Otherwise each FILE argument is loaded as an unencrypted
key with no declared attributes; --thumbprint-kid derives each key id
from its RFC 7638 thumbprint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := exportKeystore(args)
		if err != nil {
			return err
		}

		set, err := ks.PublicJWKS()
		if err != nil {
			return err
		}
		if exportAutoKID {
			for i := range set.Keys {
				if set.Keys[i].Kid != "" {
					continue
				}
				thumb, err := set.Keys[i].Thumbprint()
				if err != nil {
					return err
				}
				set.Keys[i].Kid = thumb
			}
		}

		out, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func exportKeystore(files []string) (keystore.Keystore, error) {
	if exportConfig != "" {
		cfg, err := config.Load(exportConfig)
		if err != nil {
			return keystore.Keystore{}, err
		}
		return cfg.LoadKeystore()
	}

	if len(files) == 0 {
		return keystore.Keystore{}, fmt.Errorf("no key files given (or use --config)")
	}

	entries := make([]keystore.Entry, 0, len(files))
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return keystore.Keystore{}, err
		}
		key, err := encoding.Load(raw)
		encoding.Zeroize(raw)
		if err != nil {
			return keystore.Keystore{}, fmt.Errorf("load %s: %w", path, err)
		}
		entries = append(entries, keystore.NewEntry(key))
	}
	return keystore.New(entries...), nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportConfig, "config", "c", "",
		"keystore manifest to export from")
	exportCmd.Flags().BoolVar(&exportAutoKID, "thumbprint-kid", false,
		"fill missing key ids with RFC 7638 thumbprints")
}
