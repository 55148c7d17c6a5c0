package auth

import "testing"

func TestOperatorAuthAcceptsMatchingToken(t *testing.T) {
	hash, err := HashToken("s3cret-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewOperatorAuth(hash).Check("s3cret-token"); err != nil {
		t.Fatalf("expected token to match, got %v", err)
	}
}

func TestOperatorAuthRejectsWrongToken(t *testing.T) {
	hash, err := HashToken("s3cret-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := NewOperatorAuth(hash).Check("other"); err != ErrInvalidOperatorToken {
		t.Fatalf("expected ErrInvalidOperatorToken, got %v", err)
	}
}

func TestOperatorAuthDisabledWithoutHash(t *testing.T) {
	if err := NewOperatorAuth("").Check("anything"); err != ErrInvalidOperatorToken {
		t.Fatalf("expected ErrInvalidOperatorToken, got %v", err)
	}
}

func TestOperatorAuthRejectsEmptyToken(t *testing.T) {
	hash, err := HashToken("s3cret-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewOperatorAuth(hash).Check(""); err != ErrInvalidOperatorToken {
		t.Fatalf("expected ErrInvalidOperatorToken, got %v", err)
	}
}
