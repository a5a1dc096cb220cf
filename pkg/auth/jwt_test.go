package auth

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "sharddash")

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned an empty token")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Issuer != "sharddash" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "sharddash")
	}
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "sharddash")
	verifier := NewJWTManager("secret-b", "sharddash")

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() returned error: %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestJWTMalformedToken(t *testing.T) {
	m := NewJWTManager("test-secret", "sharddash")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Validate(token); err == nil {
			t.Errorf("expected validation of %q to fail", token)
		}
	}
}
