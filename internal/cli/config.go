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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwks/pkg/config"
)

var configInitOut string

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the keystore manifest",
}

// configInitCmd writes a sample manifest
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample keystore manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := cfg.Write(configInitOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configInitOut)
		return nil
	},
}

// configCheckCmd validates a manifest by loading every key it names
var configCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a keystore manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}
		ks, err := cfg.LoadKeystore()
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d key(s)\n", ks.Len())
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitOut, "out", "o", "jwks.yaml",
		"manifest file to write")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
}
