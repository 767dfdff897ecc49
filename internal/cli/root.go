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
	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-jwks/pkg/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jwks",
	Short: "go-jwks CLI - JOSE signing key management tool",
	Long: `go-jwks CLI manages the private keys behind a JSON Web Key Set:
generating keys, inspecting key files, and exporting the public
JWK Set document for publication.

Supported key types:
  - rsa:   RSA 2048 (RS256/384/512, PS256/384/512)
  - p256:  NIST P-256 (ES256)
  - p384:  NIST P-384 (ES384)
  - k256:  secp256k1 (ES256K)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}
