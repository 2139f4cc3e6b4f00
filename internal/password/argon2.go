package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are argon2id cost parameters. The defaults (64 MiB, 3 passes,
// parallelism 4) match the PHC recommendations for server-side hashing.
type Params struct {
	MemoryKB    uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func DefaultParams() Params {
	return Params{
		MemoryKB:    64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher produces and verifies PHC-encoded argon2id hashes
// ($argon2id$v=19$m=...,t=...,p=...$salt$digest). The encoded string is
// self-describing, so Verify works against hashes produced under older
// parameters and NeedsRehash reports when they fall below the current ones.
type Hasher struct {
	params Params
}

func NewHasher(p Params) *Hasher {
	if p.SaltLength == 0 {
		p.SaltLength = 16
	}
	if p.KeyLength == 0 {
		p.KeyLength = 32
	}
	return &Hasher{params: p}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := argon2.IDKey(
		[]byte(plaintext),
		salt,
		h.params.Iterations,
		h.params.MemoryKB,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKB,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify reports whether plaintext matches the encoded hash. Malformed
// input yields false, never an error: login treats a bad stored hash the
// same as a wrong password.
func (h *Hasher) Verify(encoded, plaintext string) bool {
	parsed, err := decode(encoded)
	if err != nil {
		return false
	}

	computed := argon2.IDKey(
		[]byte(plaintext),
		parsed.salt,
		parsed.iterations,
		parsed.memoryKB,
		parsed.parallelism,
		uint32(len(parsed.digest)),
	)

	return subtle.ConstantTimeCompare(computed, parsed.digest) == 1
}

// NeedsRehash reports whether the hash was produced with weaker
// parameters than currently configured. Malformed hashes report true so
// the caller re-hashes on the next successful login.
func (h *Hasher) NeedsRehash(encoded string) bool {
	parsed, err := decode(encoded)
	if err != nil {
		return true
	}
	return parsed.memoryKB < h.params.MemoryKB ||
		parsed.iterations < h.params.Iterations ||
		parsed.parallelism < h.params.Parallelism ||
		uint32(len(parsed.digest)) != h.params.KeyLength
}

type decoded struct {
	memoryKB    uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	digest      []byte
}

func decode(encoded string) (*decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, errors.New("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, errors.New("malformed version field")
	}
	if version != argon2.Version {
		return nil, errors.New("unsupported argon2 version")
	}

	out := &decoded{}
	for _, kv := range strings.Split(parts[3], ",") {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, errors.New("malformed parameter field")
		}
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return nil, errors.New("malformed parameter value")
		}
		switch key {
		case "m":
			out.memoryKB = uint32(n)
		case "t":
			out.iterations = uint32(n)
		case "p":
			if n > 255 {
				return nil, errors.New("parallelism out of range")
			}
			out.parallelism = uint8(n)
		default:
			return nil, errors.New("unknown parameter")
		}
	}
	if out.memoryKB == 0 || out.iterations == 0 || out.parallelism == 0 {
		return nil, errors.New("missing parameters")
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(out.salt) == 0 {
		return nil, errors.New("malformed salt")
	}
	if out.digest, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(out.digest) == 0 {
		return nil, errors.New("malformed digest")
	}
	return out, nil
}
