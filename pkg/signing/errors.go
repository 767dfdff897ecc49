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

package signing

import "errors"

var (
	// ErrWrongAlgorithm indicates the requested algorithm is incompatible
	// with the key's type or curve. The only remedy is a different key or
	// algorithm, so there is no further subdivision.
	ErrWrongAlgorithm = errors.New("signing: wrong algorithm for key")

	// ErrSigningFailed indicates the underlying signature operation failed
	ErrSigningFailed = errors.New("signing: operation failed")
)
