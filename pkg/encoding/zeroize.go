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

package encoding

// Zeroize overwrites the buffer with zeros. Call it on any serialized
// private key material (DER or PEM) once it is no longer needed. The
// encode and load functions in this package zeroize their intermediate
// buffers; buffers they return belong to the caller.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
