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

package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"testing"

	gojose "github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-jwks/pkg/keys"
)

func TestFromPublicKeyRSA(t *testing.T) {
	key, err := keys.GenerateRSA(rand.Reader)
	require.NoError(t, err)

	jwk, err := FromPrivateKey(key)
	require.NoError(t, err)

	assert.Equal(t, "RSA", jwk.Kty)
	assert.NotEmpty(t, jwk.N)
	assert.Equal(t, "AQAB", jwk.E)
	assert.Empty(t, jwk.Crv)
	assert.Empty(t, jwk.X)
}

func TestFromPublicKeyEC(t *testing.T) {
	tests := []struct {
		name    string
		key     func() (keys.PrivateKey, error)
		wantCrv string
		wantLen int
	}{
		{"P-256", func() (keys.PrivateKey, error) { return keys.GenerateECP256(rand.Reader) }, "P-256", 43},
		{"P-384", func() (keys.PrivateKey, error) { return keys.GenerateECP384(rand.Reader) }, "P-384", 64},
		{"secp256k1", func() (keys.PrivateKey, error) { return keys.GenerateECK256(rand.Reader) }, "secp256k1", 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := tt.key()
			require.NoError(t, err)

			jwk, err := FromPrivateKey(key)
			require.NoError(t, err)

			assert.Equal(t, "EC", jwk.Kty)
			assert.Equal(t, tt.wantCrv, jwk.Crv)
			// Coordinates are fixed-width, so the base64url length is
			// stable even for points with leading zero bytes.
			assert.Len(t, jwk.X, tt.wantLen)
			assert.Len(t, jwk.Y, tt.wantLen)
		})
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	generators := map[string]func() (keys.PrivateKey, error){
		"RSA":       func() (keys.PrivateKey, error) { return keys.GenerateRSA(rand.Reader) },
		"P-256":     func() (keys.PrivateKey, error) { return keys.GenerateECP256(rand.Reader) },
		"P-384":     func() (keys.PrivateKey, error) { return keys.GenerateECP384(rand.Reader) },
		"secp256k1": func() (keys.PrivateKey, error) { return keys.GenerateECK256(rand.Reader) },
	}

	for name, generate := range generators {
		t.Run(name, func(t *testing.T) {
			key, err := generate()
			require.NoError(t, err)

			jwk, err := FromPrivateKey(key)
			require.NoError(t, err)

			pub, err := jwk.PublicKey()
			require.NoError(t, err)

			switch p := pub.(type) {
			case *rsa.PublicKey:
				assert.True(t, p.Equal(key.Public()))
			case *ecdsa.PublicKey:
				assert.True(t, p.Equal(key.Public()))
			default:
				t.Fatalf("unexpected public key type %T", pub)
			}
		})
	}
}

func TestPublicKeyRejectsOffCurvePoint(t *testing.T) {
	key, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	jwk, err := FromPrivateKey(key)
	require.NoError(t, err)

	// Swap the coordinates; the result is almost surely off curve.
	jwk.X, jwk.Y = jwk.Y, jwk.X
	_, err = jwk.PublicKey()
	assert.ErrorIs(t, err, ErrMalformedKey)
}

// TestThumbprintRFC7638Vector checks the worked example of RFC 7638
// section 3.1.
func TestThumbprintRFC7638Vector(t *testing.T) {
	key := Key{
		Kty: "RSA",
		N:   "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		E:   "AQAB",
		Alg: "RS256",
		Kid: "2011-04-29",
	}

	thumb, err := key.Thumbprint()
	require.NoError(t, err)
	assert.Equal(t, "NzbLsXh8uDCcd-6MNwXF4W_7noWXFZAfHkxZsRGC9Xs", thumb)
}

func TestThumbprintIgnoresOptionalMembers(t *testing.T) {
	key, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	jwk, err := FromPrivateKey(key)
	require.NoError(t, err)

	bare, err := jwk.Thumbprint()
	require.NoError(t, err)

	jwk.Kid = "some-kid"
	jwk.Use = "sig"
	jwk.Alg = "ES256"
	decorated, err := jwk.Thumbprint()
	require.NoError(t, err)

	assert.Equal(t, bare, decorated)
}

// TestGoJoseInterop cross-checks the emitted JWK JSON against the
// go-jose implementation. secp256k1 is excluded: go-jose cannot
// represent it.
func TestGoJoseInterop(t *testing.T) {
	generators := map[string]func() (keys.PrivateKey, error){
		"RSA":   func() (keys.PrivateKey, error) { return keys.GenerateRSA(rand.Reader) },
		"P-256": func() (keys.PrivateKey, error) { return keys.GenerateECP256(rand.Reader) },
		"P-384": func() (keys.PrivateKey, error) { return keys.GenerateECP384(rand.Reader) },
	}

	for name, generate := range generators {
		t.Run(name, func(t *testing.T) {
			key, err := generate()
			require.NoError(t, err)

			jwk, err := FromPrivateKey(key)
			require.NoError(t, err)
			jwk.Kid = "interop"
			jwk.Use = "sig"

			data, err := json.Marshal(jwk)
			require.NoError(t, err)

			var theirs gojose.JSONWebKey
			require.NoError(t, theirs.UnmarshalJSON(data))
			assert.True(t, theirs.Valid())
			assert.Equal(t, "interop", theirs.KeyID)

			switch p := theirs.Key.(type) {
			case *rsa.PublicKey:
				assert.True(t, p.Equal(key.Public()))
			case *ecdsa.PublicKey:
				assert.True(t, p.Equal(key.Public()))
			default:
				t.Fatalf("unexpected key type %T", theirs.Key)
			}
		})
	}
}

func TestGoJoseThumbprintAgreement(t *testing.T) {
	key, err := keys.GenerateECP256(rand.Reader)
	require.NoError(t, err)

	jwk, err := FromPrivateKey(key)
	require.NoError(t, err)

	ours, err := jwk.Thumbprint()
	require.NoError(t, err)

	theirs := gojose.JSONWebKey{Key: key.Public()}
	sum, err := theirs.Thumbprint(crypto.SHA256)
	require.NoError(t, err)

	assert.Equal(t, ours, base64.RawURLEncoding.EncodeToString(sum))
}
