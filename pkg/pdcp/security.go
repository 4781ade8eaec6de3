package pdcp

// Integrity computes and verifies MAC-I over PDCP control PDUs. It is
// bearer-scoped: a single Integrity value is configured once per entity and
// is expected to hold whatever key material that implies internally. The
// concrete EIA algorithm and key derivation live outside this package; see
// internal/simcrypto for a reference implementation used by tests and the
// simulation harness.
type Integrity interface {
	// Generate computes a 4-byte MAC-I over data using the given COUNT.
	Generate(data []byte, count uint32) (mac [4]byte, err error)
	// Verify reports whether mac is the correct MAC-I for data at count.
	Verify(data []byte, count uint32, mac [4]byte) (bool, error)
}

// Cipher encrypts and decrypts PDCP payloads. Like Integrity
// it is bearer-scoped and configured once per entity; the concrete EEA
// algorithm lives outside this package.
type Cipher interface {
	// Encrypt returns the ciphertext for plaintext at the given COUNT.
	// Implementations for stream-cipher-like algorithms (the only kind
	// this protocol uses) return a slice the same length as plaintext.
	Encrypt(plaintext []byte, count uint32) ([]byte, error)
	// Decrypt returns the plaintext for ciphertext at the given COUNT.
	Decrypt(ciphertext []byte, count uint32) ([]byte, error)
}

// NullIntegrity is a no-op Integrity used when do_integrity is false; it is
// never invoked by the entity in that configuration but is provided so
// callers can wire a concrete collaborator unconditionally at construction
// time.
type NullIntegrity struct{}

// Generate returns the zero MAC.
func (NullIntegrity) Generate(_ []byte, _ uint32) ([4]byte, error) { return [4]byte{}, nil }

// Verify always reports success.
func (NullIntegrity) Verify(_ []byte, _ uint32, _ [4]byte) (bool, error) { return true, nil }

// NullCipher is a no-op Cipher used when do_encryption is false.
type NullCipher struct{}

// Encrypt returns plaintext unchanged.
func (NullCipher) Encrypt(plaintext []byte, _ uint32) ([]byte, error) { return plaintext, nil }

// Decrypt returns ciphertext unchanged.
func (NullCipher) Decrypt(ciphertext []byte, _ uint32) ([]byte, error) { return ciphertext, nil }
