package hasher

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashIsSalted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same plaintext are identical")
	}

	for _, hash := range []string{first, second} {
		ok, err := h.Verify("secret1", hash)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if !ok {
			t.Fatalf("Verify rejected the matching plaintext")
		}
	}
}

func TestBcrypt_VerifyMismatch(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := h.Verify("wrong", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcrypt_VerifyMalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	ok, err := h.Verify("secret1", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatalf("expected operational error for malformed stored value")
	}
	if ok {
		t.Fatalf("Verify accepted a malformed hash")
	}
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	h := NewBcrypt(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
