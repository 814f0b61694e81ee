package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_UniqueSaltPerCall(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	d1, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	d2, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if d1 == d2 {
		t.Fatalf("two hashes of the same plaintext are identical")
	}
	if !h.Verify("s3cret", d1) || !h.Verify("s3cret", d2) {
		t.Fatalf("digests do not verify against their plaintext")
	}
}

func TestHasher_VerifyMismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	d, err := h.Hash("correct")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h.Verify("wrong", d) {
		t.Fatalf("wrong plaintext verified")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$xx$garbage"} {
		if h.Verify("anything", digest) {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(999)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
}
