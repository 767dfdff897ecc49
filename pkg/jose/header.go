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

package jose

// Header is the subset of a JWS protected header relevant to key
// selection.
type Header struct {
	// Algorithm is the `alg` header parameter. Required.
	Algorithm SignatureAlgorithm `json:"alg"`

	// KeyID is the `kid` header parameter, if present.
	KeyID string `json:"kid,omitempty"`

	// Type is the `typ` header parameter, if present.
	Type string `json:"typ,omitempty"`
}

// ConstraintSetFromHeader seeds a ConstraintSet from a JWS header: an
// exact-algorithm constraint for `alg`, plus an exact-key-id constraint
// when the header carries a `kid`.
func ConstraintSetFromHeader(h Header) ConstraintSet {
	s := NewConstraintSet().WithAlg(h.Algorithm)

	if h.KeyID != "" {
		s = s.WithKID(h.KeyID)
	}

	return s
}
