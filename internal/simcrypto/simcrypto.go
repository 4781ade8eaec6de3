// Package simcrypto provides reference Cipher/Integrity implementations
// consumed by pkg/pdcp through its collaborator interfaces. These are
// not the production EEA/EIA algorithms specified by TS 33.401 -- they are
// stand-ins for the simulation harness and for entity tests that need a
// real (rather than no-op) security layer to exercise the TX/RX
// ciphering and MAC ordering.
package simcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/hkdf"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

const (
	cipherKeyLen    = 32 // AES-256 key, CTR mode
	integrityKeyLen = 32 // HMAC-SHA256 key
)

var (
	cipherInfo    = []byte("ltepdcp-sim-cipher")
	integrityInfo = []byte("ltepdcp-sim-integrity")
)

// DeriveKeys derives a cipher key and an integrity key from a shared
// session secret via HKDF-SHA256, one key pair per bearer (shared by both
// directions).
// bearerID and lcid are mixed into the HKDF salt so sibling bearers
// derived from the same session secret get distinct key streams.
func DeriveKeys(sessionSecret []byte, bearerID, lcid uint32) (cipherKey, integrityKey []byte, err error) {
	salt := make([]byte, 8)
	binary.BigEndian.PutUint32(salt[0:4], bearerID)
	binary.BigEndian.PutUint32(salt[4:8], lcid)

	cipherKey = make([]byte, cipherKeyLen)
	if _, err = hkdf.New(sha256.New, sessionSecret, salt, cipherInfo).Read(cipherKey); err != nil {
		return nil, nil, fmt.Errorf("simcrypto: derive cipher key: %w", err)
	}

	integrityKey = make([]byte, integrityKeyLen)
	if _, err = hkdf.New(sha256.New, sessionSecret, salt, integrityInfo).Read(integrityKey); err != nil {
		return nil, nil, fmt.Errorf("simcrypto: derive integrity key: %w", err)
	}

	return cipherKey, integrityKey, nil
}

// AESCipher implements pdcp.Cipher as AES-256-CTR keyed by a session key,
// with the 32-bit COUNT expanded into a 16-byte IV the way EEA2 expands
// COUNT/BEARER/DIRECTION into its keystream seed -- simplified here to
// COUNT alone since this package has no separate uplink/downlink key.
type AESCipher struct {
	block cipher.Block
}

// NewAESCipher constructs an AESCipher from a 32-byte key.
func NewAESCipher(key []byte) (*AESCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("simcrypto: new aes cipher: %w", err)
	}
	return &AESCipher{block: block}, nil
}

func (c *AESCipher) iv(count uint32) [aes.BlockSize]byte {
	var iv [aes.BlockSize]byte
	binary.BigEndian.PutUint32(iv[0:4], count)
	return iv
}

// Encrypt implements pdcp.Cipher.
func (c *AESCipher) Encrypt(plaintext []byte, count uint32) ([]byte, error) {
	return c.xor(plaintext, count), nil
}

// Decrypt implements pdcp.Cipher. AES-CTR is an involution, so decrypt is
// the same transform as encrypt.
func (c *AESCipher) Decrypt(ciphertext []byte, count uint32) ([]byte, error) {
	return c.xor(ciphertext, count), nil
}

func (c *AESCipher) xor(in []byte, count uint32) []byte {
	iv := c.iv(count)
	out := make([]byte, len(in))
	stream := cipher.NewCTR(c.block, iv[:])
	stream.XORKeyStream(out, in)
	return out
}

// HMACIntegrity implements pdcp.Integrity as HMAC-SHA256 over
// count || data, truncated to the 4-byte MAC-I this protocol carries. It is
// not EIA2/EIA3 but exercises the Generate-before-encrypt / Verify-after-
// decrypt ordering with a real keyed MAC.
type HMACIntegrity struct {
	key []byte
}

// NewHMACIntegrity constructs an HMACIntegrity from a key of any length;
// HMAC handles key material shorter or longer than the hash block size.
func NewHMACIntegrity(key []byte) *HMACIntegrity {
	return &HMACIntegrity{key: key}
}

// Generate implements pdcp.Integrity.
func (h *HMACIntegrity) Generate(data []byte, count uint32) ([4]byte, error) {
	var mac [4]byte
	sum := h.sum(data, count)
	copy(mac[:], sum[:4])
	return mac, nil
}

// Verify implements pdcp.Integrity.
func (h *HMACIntegrity) Verify(data []byte, count uint32, mac [4]byte) (bool, error) {
	sum := h.sum(data, count)
	return hmac.Equal(sum[:4], mac[:]), nil
}

func (h *HMACIntegrity) sum(data []byte, count uint32) []byte {
	mac := hmac.New(sha256.New, h.key)
	var countBytes [4]byte
	binary.BigEndian.PutUint32(countBytes[:], count)
	mac.Write(countBytes[:])
	mac.Write(data)
	return mac.Sum(nil)
}

// Suite bundles a Cipher and Integrity derived from the same session
// secret, the shape the simulation harness wires into each pdcp.Entity.
type Suite struct {
	Cipher    pdcp.Cipher
	Integrity pdcp.Integrity
}

// NewSuite derives per-bearer keys from sessionSecret and returns a Suite
// backed by AESCipher/HMACIntegrity.
func NewSuite(sessionSecret []byte, bearerID, lcid uint32) (*Suite, error) {
	cipherKey, integrityKey, err := DeriveKeys(sessionSecret, bearerID, lcid)
	if err != nil {
		return nil, err
	}
	aesCipher, err := NewAESCipher(cipherKey)
	if err != nil {
		return nil, err
	}
	return &Suite{
		Cipher:    aesCipher,
		Integrity: NewHMACIntegrity(integrityKey),
	}, nil
}

// NullSuite returns pdcp.NullCipher/pdcp.NullIntegrity, for scenarios with
// do_integrity and do_encryption both off.
func NullSuite() *Suite {
	return &Suite{
		Cipher:    pdcp.NullCipher{},
		Integrity: pdcp.NullIntegrity{},
	}
}
