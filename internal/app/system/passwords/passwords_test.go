package passwords

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pw123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id encoded hash, got %q", hash)
	}
	if strings.Contains(hash, "pw123") {
		t.Error("hash must not contain the plaintext password")
	}

	if !Verify("pw123", hash) {
		t.Error("expected correct password to verify")
	}
	if Verify("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	h1, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	h2, err := Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different salts to yield different hashes")
	}
	if !Verify("same-password", h1) || !Verify("same-password", h2) {
		t.Error("both hashes should verify the original password")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$only-one-part",
		"$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=bad,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5",
	}
	for _, h := range malformed {
		if Verify("pw123", h) {
			t.Errorf("malformed hash %q must not verify", h)
		}
	}
}
