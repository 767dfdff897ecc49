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

package jwk

import "errors"

var (
	// ErrUnsupportedKey is returned for key types or curves that have
	// no JWK representation in this module.
	ErrUnsupportedKey = errors.New("jwk: unsupported key")

	// ErrMalformedKey is returned when a JWK's parameters cannot be
	// decoded into a native public key.
	ErrMalformedKey = errors.New("jwk: malformed key")
)
