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

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509/pkix"
	"encoding/asn1"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// PBES2 / PBKDF2 object identifiers (RFC 8018) and the supported
// encryption schemes.
var (
	oidPBES2  = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 13}
	oidPBKDF2 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 12}

	oidHMACWithSHA1   = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 7}
	oidHMACWithSHA224 = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 8}
	oidHMACWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 9}
	oidHMACWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 10}
	oidHMACWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 11}

	oidAES128CBC  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 2}
	oidAES192CBC  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 22}
	oidAES256CBC  = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 42}
	oidDESEDE3CBC = asn1.ObjectIdentifier{1, 2, 840, 113549, 3, 7}
)

type pbes2Params struct {
	KeyDerivationFunc pkix.AlgorithmIdentifier
	EncryptionScheme  pkix.AlgorithmIdentifier
}

type pbkdf2Params struct {
	Salt           []byte
	IterationCount int
	KeyLength      int                      `asn1:"optional"`
	PRF            pkix.AlgorithmIdentifier `asn1:"optional"`
}

// decryptPKCS8 decrypts an EncryptedPrivateKeyInfo with the password,
// returning the plaintext PrivateKeyInfo DER. The caller owns the
// returned buffer and must Zeroize it.
//
// Only PBES2 with PBKDF2 key derivation is supported, over AES-CBC or
// DES-EDE3-CBC. (The youmark/pkcs8 module decrypts the same containers
// but parses the result through crypto/x509, which cannot surface the raw
// plaintext nor secp256k1 keys.)
func decryptPKCS8(der, password []byte) ([]byte, error) {
	var info encryptedPrivateKeyInfo
	if err := unmarshalExact(der, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	if !info.Algo.Algorithm.Equal(oidPBES2) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncryptionScheme, info.Algo.Algorithm)
	}

	var params pbes2Params
	if _, err := asn1.Unmarshal(info.Algo.Parameters.FullBytes, &params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	key, blockSize, newCipher, err := deriveKey(&params, password)
	if err != nil {
		return nil, err
	}
	defer Zeroize(key)

	var iv []byte
	if _, err := asn1.Unmarshal(params.EncryptionScheme.Parameters.FullBytes, &iv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	if len(iv) != blockSize {
		return nil, fmt.Errorf("%w: bad IV length", ErrInvalidPrivateKey)
	}

	block, err := newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	data := info.EncryptedData
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrDecryptionFailed
	}

	plain := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, data)

	unpadded, ok := stripPadding(plain, blockSize)
	if !ok {
		Zeroize(plain)
		return nil, ErrDecryptionFailed
	}

	return unpadded, nil
}

// deriveKey runs the PBES2 key derivation, returning the derived key, the
// cipher block size and the cipher constructor.
func deriveKey(params *pbes2Params, password []byte) ([]byte, int, func([]byte) (cipher.Block, error), error) {
	if !params.KeyDerivationFunc.Algorithm.Equal(oidPBKDF2) {
		return nil, 0, nil, fmt.Errorf("%w: KDF %s", ErrUnsupportedEncryptionScheme, params.KeyDerivationFunc.Algorithm)
	}

	var kdf pbkdf2Params
	if _, err := asn1.Unmarshal(params.KeyDerivationFunc.Parameters.FullBytes, &kdf); err != nil {
		return nil, 0, nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	prf := sha1.New
	switch {
	case len(kdf.PRF.Algorithm) == 0, kdf.PRF.Algorithm.Equal(oidHMACWithSHA1):
	case kdf.PRF.Algorithm.Equal(oidHMACWithSHA224):
		prf = sha256.New224
	case kdf.PRF.Algorithm.Equal(oidHMACWithSHA256):
		prf = sha256.New
	case kdf.PRF.Algorithm.Equal(oidHMACWithSHA384):
		prf = sha512.New384
	case kdf.PRF.Algorithm.Equal(oidHMACWithSHA512):
		prf = sha512.New
	default:
		return nil, 0, nil, fmt.Errorf("%w: PRF %s", ErrUnsupportedEncryptionScheme, kdf.PRF.Algorithm)
	}

	keyLen, blockSize, newCipher, err := cipherScheme(params.EncryptionScheme.Algorithm)
	if err != nil {
		return nil, 0, nil, err
	}
	if kdf.KeyLength != 0 {
		keyLen = kdf.KeyLength
	}

	key := derivePBKDF2(password, kdf.Salt, kdf.IterationCount, keyLen, prf)
	return key, blockSize, newCipher, nil
}

func derivePBKDF2(password, salt []byte, iter, keyLen int, prf func() hash.Hash) []byte {
	return pbkdf2.Key(password, salt, iter, keyLen, prf)
}

func cipherScheme(oid asn1.ObjectIdentifier) (keyLen, blockSize int, newCipher func([]byte) (cipher.Block, error), err error) {
	switch {
	case oid.Equal(oidAES128CBC):
		return 16, aes.BlockSize, aes.NewCipher, nil
	case oid.Equal(oidAES192CBC):
		return 24, aes.BlockSize, aes.NewCipher, nil
	case oid.Equal(oidAES256CBC):
		return 32, aes.BlockSize, aes.NewCipher, nil
	case oid.Equal(oidDESEDE3CBC):
		return 24, des.BlockSize, des.NewTripleDESCipher, nil
	default:
		return 0, 0, nil, fmt.Errorf("%w: cipher %s", ErrUnsupportedEncryptionScheme, oid)
	}
}

// stripPadding removes and validates PKCS#7 padding.
func stripPadding(b []byte, blockSize int) ([]byte, bool) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, false
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
