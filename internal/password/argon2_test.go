package password

import (
	"strings"
	"testing"
)

// testParams keeps the memory cost low so the suite stays fast; the
// production defaults only change cost, not behavior.
func testParams() Params {
	return Params{
		MemoryKB:    16 * 1024,
		Iterations:  1,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher(testParams())

	hash, err := hasher.Hash("Secure123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$m=16384,t=1,p=2$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	if !hasher.Verify(hash, "Secure123!") {
		t.Fatal("expected matching password to verify")
	}
	if hasher.Verify(hash, "Secure123?") {
		t.Fatal("expected non-matching password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewHasher(testParams())

	first, err := hasher.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same input must differ")
	}
	if !hasher.Verify(first, "same-input") || !hasher.Verify(second, "same-input") {
		t.Fatal("both salted hashes must verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewHasher(testParams())

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=16384,t=1,p=2$onlyfive",
		"$argon2i$v=19$m=16384,t=1,p=2$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=18$m=16384,t=1,p=2$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=16384,t=1,p=2$!!!badsalt!!!$ZGlnZXN0",
		"$argon2id$v=19$m=0,t=1,p=2$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
	}

	for _, h := range malformed {
		if hasher.Verify(h, "anything") {
			t.Fatalf("malformed hash verified: %q", h)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	weak := NewHasher(Params{MemoryKB: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	strong := NewHasher(testParams())

	weakHash, err := weak.Hash("password-one")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	strongHash, err := strong.Hash("password-two")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strong.NeedsRehash(weakHash) {
		t.Fatal("hash under weaker parameters should need rehash")
	}
	if strong.NeedsRehash(strongHash) {
		t.Fatal("hash under current parameters should not need rehash")
	}
	if !strong.NeedsRehash("garbage") {
		t.Fatal("malformed hash should need rehash")
	}
}
