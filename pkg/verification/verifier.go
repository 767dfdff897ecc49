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

// Package verification binds a public key to a single JOSE signature
// algorithm, producing a handle that verifies JOSE wire signatures.
package verification

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// Verifier is a public key bound to one signature algorithm.
type Verifier struct {
	alg jose.SignatureAlgorithm

	rsaPub *rsa.PublicKey
	ecPub  *ecdsa.PublicKey
}

// NewVerifier binds the public half of a private key to alg, applying
// the same exhaustive compatibility table as signing.NewSigner.
func NewVerifier(key keys.PrivateKey, alg jose.SignatureAlgorithm) (*Verifier, error) {
	return NewVerifierForPublicKey(key.Public(), alg)
}

// NewVerifierForPublicKey binds a bare public key (for example one
// reconstructed from a published JWK) to alg. The key's type and curve
// must match the algorithm; any other pairing returns ErrWrongAlgorithm.
func NewVerifierForPublicKey(pub crypto.PublicKey, alg jose.SignatureAlgorithm) (*Verifier, error) {
	switch p := pub.(type) {
	case *rsa.PublicKey:
		switch alg {
		case jose.RS256, jose.RS384, jose.RS512, jose.PS256, jose.PS384, jose.PS512:
			return &Verifier{alg: alg, rsaPub: p}, nil
		}

	case *ecdsa.PublicKey:
		if alg == curveAlgorithm(p.Curve) {
			return &Verifier{alg: alg, ecPub: p}, nil
		}
	}

	return nil, ErrWrongAlgorithm
}

// curveAlgorithm maps a curve to its single JOSE algorithm.
func curveAlgorithm(curve elliptic.Curve) jose.SignatureAlgorithm {
	switch curve {
	case elliptic.P256():
		return jose.ES256
	case elliptic.P384():
		return jose.ES384
	case secp256k1.S256():
		return jose.ES256K
	default:
		return ""
	}
}

// Alg returns the bound signature algorithm.
func (v *Verifier) Alg() jose.SignatureAlgorithm {
	return v.alg
}

// Verify checks the JOSE signature over the message. Returns
// ErrInvalidSignature when the signature does not verify.
func (v *Verifier) Verify(message, signature []byte) error {
	hash := v.alg.Hash()
	hasher := hash.New()
	hasher.Write(message)
	digest := hasher.Sum(nil)

	switch v.alg {
	case jose.RS256, jose.RS384, jose.RS512:
		if err := rsa.VerifyPKCS1v15(v.rsaPub, hash, digest, signature); err != nil {
			return ErrInvalidSignature
		}
		return nil

	case jose.PS256, jose.PS384, jose.PS512:
		opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthAuto, Hash: hash}
		if err := rsa.VerifyPSS(v.rsaPub, hash, digest, signature, opts); err != nil {
			return ErrInvalidSignature
		}
		return nil

	default:
		byteLen := (v.ecPub.Curve.Params().BitSize + 7) / 8
		if len(signature) != 2*byteLen {
			return ErrInvalidSignature
		}
		r := new(big.Int).SetBytes(signature[:byteLen])
		s := new(big.Int).SetBytes(signature[byteLen:])
		if !ecdsa.Verify(v.ecPub, digest, r, s) {
			return ErrInvalidSignature
		}
		return nil
	}
}
