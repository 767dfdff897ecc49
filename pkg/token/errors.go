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

package token

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for algorithms golang-jwt has
	// no signing method for, or that the module does not recognize.
	ErrUnsupportedAlgorithm = errors.New("token: unsupported algorithm")

	// ErrNoMatchingKey is returned when no keystore entry satisfies the
	// token's constraints.
	ErrNoMatchingKey = errors.New("token: no matching key in keystore")
)
