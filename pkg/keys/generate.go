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

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// rsaKeyBits is the fixed modulus size for generated RSA keys.
const rsaKeyBits = 2048

// GenerateRSA generates a 2048-bit RSA key from the given random source.
// The source must be cryptographically secure in production; tests may
// inject a deterministic reader.
func GenerateRSA(rand io.Reader) (*RSA, error) {
	key, err := rsa.GenerateKey(rand, rsaKeyBits)
	if err != nil {
		return nil, err
	}
	return &RSA{key: key}, nil
}

// GenerateECP256 generates an elliptic curve key on NIST P-256.
func GenerateECP256(rand io.Reader) (*ECP256, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand)
	if err != nil {
		return nil, err
	}
	return &ECP256{key: key}, nil
}

// GenerateECP384 generates an elliptic curve key on NIST P-384.
func GenerateECP384(rand io.Reader) (*ECP384, error) {
	key, err := ecdsa.GenerateKey(elliptic.P384(), rand)
	if err != nil {
		return nil, err
	}
	return &ECP384{key: key}, nil
}

// GenerateECK256 generates an elliptic curve key on secp256k1.
func GenerateECK256(rand io.Reader) (*ECK256, error) {
	key, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, err
	}
	return &ECK256{key: key}, nil
}
