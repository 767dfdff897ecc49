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

// Package jose defines the JOSE identifiers (signature algorithms, key
// types, key uses and named curves) shared by the rest of the module,
// together with the constraint engine used to select keys matching a
// JSON Web Signature header.
package jose

import (
	"crypto"
)

// SignatureAlgorithm represents a JSON Web Signature algorithm identifier
// as registered in the IANA "JSON Web Signature and Encryption Algorithms"
// registry.
type SignatureAlgorithm string

const (
	// RS256 is RSASSA-PKCS1-v1_5 using SHA-256.
	RS256 SignatureAlgorithm = "RS256"

	// RS384 is RSASSA-PKCS1-v1_5 using SHA-384.
	RS384 SignatureAlgorithm = "RS384"

	// RS512 is RSASSA-PKCS1-v1_5 using SHA-512.
	RS512 SignatureAlgorithm = "RS512"

	// PS256 is RSASSA-PSS using SHA-256 and MGF1 with SHA-256.
	PS256 SignatureAlgorithm = "PS256"

	// PS384 is RSASSA-PSS using SHA-384 and MGF1 with SHA-384.
	PS384 SignatureAlgorithm = "PS384"

	// PS512 is RSASSA-PSS using SHA-512 and MGF1 with SHA-512.
	PS512 SignatureAlgorithm = "PS512"

	// ES256 is ECDSA using the P-256 curve and SHA-256.
	ES256 SignatureAlgorithm = "ES256"

	// ES384 is ECDSA using the P-384 curve and SHA-384.
	ES384 SignatureAlgorithm = "ES384"

	// ES256K is ECDSA using the secp256k1 curve and SHA-256.
	ES256K SignatureAlgorithm = "ES256K"
)

// String returns the string representation.
func (a SignatureAlgorithm) String() string {
	return string(a)
}

// Valid reports whether the algorithm is one of the signature algorithms
// supported by this module.
func (a SignatureAlgorithm) Valid() bool {
	switch a {
	case RS256, RS384, RS512, PS256, PS384, PS512, ES256, ES384, ES256K:
		return true
	default:
		return false
	}
}

// Hash returns the digest function used by the algorithm.
// Returns 0 for unknown algorithms.
func (a SignatureAlgorithm) Hash() crypto.Hash {
	switch a {
	case RS256, PS256, ES256, ES256K:
		return crypto.SHA256
	case RS384, PS384, ES384:
		return crypto.SHA384
	case RS512, PS512:
		return crypto.SHA512
	default:
		return crypto.Hash(0)
	}
}

// KeyType represents a JSON Web Key type (`kty`).
type KeyType string

const (
	// KeyTypeRSA identifies RSA keys.
	KeyTypeRSA KeyType = "RSA"

	// KeyTypeEC identifies elliptic curve keys.
	KeyTypeEC KeyType = "EC"
)

// String returns the string representation.
func (t KeyType) String() string {
	return string(t)
}

// KeyUse represents the intended use of a JSON Web Key (`use`).
type KeyUse string

const (
	// UseSignature marks a key intended for signing and verification.
	UseSignature KeyUse = "sig"

	// UseEncryption marks a key intended for encryption.
	UseEncryption KeyUse = "enc"
)

// String returns the string representation.
func (u KeyUse) String() string {
	return string(u)
}

// EllipticCurve represents a named elliptic curve (`crv`) supported by
// this module.
type EllipticCurve string

const (
	// CurveP256 is NIST P-256 (secp256r1, prime256v1).
	CurveP256 EllipticCurve = "P-256"

	// CurveP384 is NIST P-384 (secp384r1).
	CurveP384 EllipticCurve = "P-384"

	// CurveSecp256k1 is the SECG secp256k1 curve.
	CurveSecp256k1 EllipticCurve = "secp256k1"
)

// String returns the string representation.
func (c EllipticCurve) String() string {
	return string(c)
}

// Algorithm returns the single signature algorithm usable with keys on
// this curve. JOSE binds each curve to exactly one algorithm.
func (c EllipticCurve) Algorithm() SignatureAlgorithm {
	switch c {
	case CurveP256:
		return ES256
	case CurveP384:
		return ES384
	case CurveSecp256k1:
		return ES256K
	default:
		return ""
	}
}
