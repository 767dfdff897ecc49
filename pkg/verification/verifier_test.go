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

import (
	"crypto"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	gojose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwks/pkg/jose"
	"github.com/jeremyhahn/go-jwks/pkg/keys"
	"github.com/jeremyhahn/go-jwks/pkg/signing"
)

func signerVerifierPairs(t *testing.T) []struct {
	name string
	key  keys.PrivateKey
	alg  jose.SignatureAlgorithm
} {
	t.Helper()

	rsaKey, err := keys.GenerateRSA(rand.Reader)
	require.NoError(t, err)
	p256, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)
	p384, err := keys.GenerateECP384(rand.Reader)
	require.NoError(t, err)
	k256, err := keys.GenerateECK256(rand.Reader)
	require.NoError(t, err)

	return []struct {
		name string
		key  keys.PrivateKey
		alg  jose.SignatureAlgorithm
	}{
		{"RS256", rsaKey, jose.RS256},
		{"RS384", rsaKey, jose.RS384},
		{"RS512", rsaKey, jose.RS512},
		{"PS256", rsaKey, jose.PS256},
		{"PS384", rsaKey, jose.PS384},
		{"PS512", rsaKey, jose.PS512},
		{"ES256", p256, jose.ES256},
		{"ES384", p384, jose.ES384},
		{"ES256K", k256, jose.ES256K},
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	message := []byte("the quick brown fox")

	for _, tt := range signerVerifierPairs(t) {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := signing.NewSigner(tt.key, tt.alg)
			require.NoError(t, err)
			verifier, err := NewVerifier(tt.key, tt.alg)
			require.NoError(t, err)

			sig, err := signer.Sign(rand.Reader, message)
			require.NoError(t, err)

			assert.NoError(t, verifier.Verify(message, sig))
		})
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	for _, tt := range signerVerifierPairs(t) {
		t.Run(tt.name, func(t *testing.T) {
			signer, err := signing.NewSigner(tt.key, tt.alg)
			require.NoError(t, err)
			verifier, err := NewVerifier(tt.key, tt.alg)
			require.NoError(t, err)

			sig, err := signer.Sign(rand.Reader, []byte("original"))
			require.NoError(t, err)

			assert.ErrorIs(t, verifier.Verify([]byte("tampered"), sig), ErrInvalidSignature)
		})
	}
}

func TestVerifyRejectsTruncatedSignature(t *testing.T) {
	key, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	signer, err := signing.NewSigner(key, jose.ES256)
	require.NoError(t, err)
	verifier, err := NewVerifier(key, jose.ES256)
	require.NoError(t, err)

	sig, err := signer.Sign(rand.Reader, []byte("msg"))
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.Verify([]byte("msg"), sig[:len(sig)-1]), ErrInvalidSignature)
}

func TestNewVerifierWrongAlgorithm(t *testing.T) {
	p256, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)
	rsaKey, err := keys.GenerateRSA(rand.Reader)
	require.NoError(t, err)

	_, err = NewVerifier(p256, jose.ES384)
	assert.ErrorIs(t, err, ErrWrongAlgorithm)

	_, err = NewVerifier(p256, jose.RS256)
	assert.ErrorIs(t, err, ErrWrongAlgorithm)

	_, err = NewVerifier(rsaKey, jose.ES256)
	assert.ErrorIs(t, err, ErrWrongAlgorithm)
}

// TestVerifierForPublicKey checks the path used when verifying against
// a key reconstructed from a published JWK.
func TestVerifierForPublicKey(t *testing.T) {
	key, err := keys.GenerateECP384(rand.Reader)
	require.NoError(t, err)

	signer, err := signing.NewSigner(key, jose.ES384)
	require.NoError(t, err)

	verifier, err := NewVerifierForPublicKey(key.Public(), jose.ES384)
	require.NoError(t, err)

	sig, err := signer.Sign(rand.Reader, []byte("msg"))
	require.NoError(t, err)
	assert.NoError(t, verifier.Verify([]byte("msg"), sig))
}

// Signatures produced elsewhere must verify here. go-jose signs the JWS
// signing input with the same raw R||S (EC) and PKCS#1/PSS (RSA) wire
// formats this package consumes.
func TestGoJoseCrossVerify(t *testing.T) {
	tests := []struct {
		name string
		alg  jose.SignatureAlgorithm
		key  func() (any, crypto.PublicKey)
	}{
		{"RS256", jose.RS256, func() (any, crypto.PublicKey) {
			k, err := keys.GenerateRSA(rand.Reader)
			require.NoError(t, err)
			return k.Key(), k.Public()
		}},
		{"PS384", jose.PS384, func() (any, crypto.PublicKey) {
			k, err := keys.GenerateRSA(rand.Reader)
			require.NoError(t, err)
			return k.Key(), k.Public()
		}},
		{"ES256", jose.ES256, func() (any, crypto.PublicKey) {
			k, err := keys.GenerateECP256(rand.Reader)
			require.NoError(t, err)
			return k.Key(), k.Public()
		}},
		{"ES384", jose.ES384, func() (any, crypto.PublicKey) {
			k, err := keys.GenerateECP384(rand.Reader)
			require.NoError(t, err)
			return k.Key(), k.Public()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native, pub := tt.key()

			signer, err := gojose.NewSigner(gojose.SigningKey{
				Algorithm: gojose.SignatureAlgorithm(tt.alg),
				Key:       native,
			}, nil)
			require.NoError(t, err)

			jws, err := signer.Sign([]byte(`{"sub":"alice"}`))
			require.NoError(t, err)
			compact, err := jws.CompactSerialize()
			require.NoError(t, err)

			parts := strings.Split(compact, ".")
			require.Len(t, parts, 3)
			signingInput := []byte(parts[0] + "." + parts[1])
			signature, err := base64.RawURLEncoding.DecodeString(parts[2])
			require.NoError(t, err)

			verifier, err := NewVerifierForPublicKey(pub, tt.alg)
			require.NoError(t, err)
			assert.NoError(t, verifier.Verify(signingInput, signature))
		})
	}
}
