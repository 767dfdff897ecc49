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

// Package signing binds a private key to a single JOSE signature
// algorithm, producing a handle that signs messages in the JOSE wire
// format: PKCS#1 v1.5 or PSS for RSA algorithms, fixed-width big-endian
// R||S for the ECDSA algorithms.
package signing

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

// Signer is a private key bound to one signature algorithm. The binding
// is validated at construction; Sign never substitutes another algorithm.
type Signer struct {
	alg jose.SignatureAlgorithm
	key keys.PrivateKey
}

// NewSigner binds key to alg.
//
// The compatibility table is exhaustive: RSA keys accept the six RSA
// algorithms, each elliptic curve accepts exactly its own algorithm.
// Every other pairing returns ErrWrongAlgorithm.
func NewSigner(key keys.PrivateKey, alg jose.SignatureAlgorithm) (*Signer, error) {
	if err := checkBinding(key, alg); err != nil {
		return nil, err
	}
	return &Signer{alg: alg, key: key}, nil
}

// checkBinding validates the (key variant, algorithm) pairing.
func checkBinding(key keys.PrivateKey, alg jose.SignatureAlgorithm) error {
	switch key.(type) {
	case *keys.RSA:
		switch alg {
		case jose.RS256, jose.RS384, jose.RS512, jose.PS256, jose.PS384, jose.PS512:
			return nil
		}
	case *keys.ECP256:
		if alg == jose.ES256 {
			return nil
		}
	case *keys.ECP384:
		if alg == jose.ES384 {
			return nil
		}
	case *keys.ECK256:
		if alg == jose.ES256K {
			return nil
		}
	}
	return ErrWrongAlgorithm
}

// Alg returns the bound signature algorithm.
func (s *Signer) Alg() jose.SignatureAlgorithm {
	return s.alg
}

// Public returns the public key corresponding to the signing key.
func (s *Signer) Public() interface{} {
	return s.key.Public()
}

// Sign signs the message with the bound algorithm, drawing randomness
// from rand where the scheme needs it, and returns the JOSE signature.
func (s *Signer) Sign(rand io.Reader, message []byte) ([]byte, error) {
	hash := s.alg.Hash()
	hasher := hash.New()
	hasher.Write(message)
	digest := hasher.Sum(nil)

	switch k := s.key.(type) {
	case *keys.RSA:
		switch s.alg {
		case jose.RS256, jose.RS384, jose.RS512:
			sig, err := rsa.SignPKCS1v15(rand, k.Key(), hash, digest)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
			}
			return sig, nil
		default:
			sig, err := rsa.SignPSS(rand, k.Key(), hash, digest, &rsa.PSSOptions{
				SaltLength: rsa.PSSSaltLengthEqualsHash,
				Hash:       hash,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
			}
			return sig, nil
		}

	case *keys.ECP256:
		return signECDSA(rand, k.Key(), digest)

	case *keys.ECP384:
		return signECDSA(rand, k.Key(), digest)

	case *keys.ECK256:
		return signECDSA(rand, k.Key().ToECDSA(), digest)

	default:
		return nil, ErrWrongAlgorithm
	}
}

// signECDSA produces the fixed-width R||S signature encoding used by
// JOSE, sized by the curve order.
func signECDSA(rand io.Reader, key *ecdsa.PrivateKey, digest []byte) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand, key, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	byteLen := (key.Curve.Params().BitSize + 7) / 8
	sig := make([]byte, 2*byteLen)
	r.FillBytes(sig[:byteLen])
	s.FillBytes(sig[byteLen:])
	return sig, nil
}
