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

package keys

import "errors"

var (
	// ErrNilKey is returned when a nil key is wrapped
	ErrNilKey = errors.New("keys: nil private key")

	// ErrWrongCurve is returned when a key is wrapped into a variant for
	// a different curve
	ErrWrongCurve = errors.New("keys: key is on the wrong curve for this variant")
)
