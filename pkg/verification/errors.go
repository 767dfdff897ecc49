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

package verification

import "errors"

var (
	// ErrWrongAlgorithm is returned when the key cannot serve the
	// requested signature algorithm.
	ErrWrongAlgorithm = errors.New("verification: wrong algorithm for key")

	// ErrInvalidSignature is returned when the signature does not
	// verify against the message.
	ErrInvalidSignature = errors.New("verification: invalid signature")
)
