package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmynk/splitroom/internal/models"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	member := models.Member{ID: "m-1", Name: "Alice"}

	token, err := m.Generate("ABC-123", member)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.GroupID != "ABC-123" || claims.MemberID != "m-1" || claims.Name != "Alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "m-1" {
		t.Errorf("Subject = %q, want m-1", claims.Subject)
	}
}

func TestJWTManagerRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	member := models.Member{ID: "m-1", Name: "Alice"}

	valid, err := m.Generate("ABC-123", member)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	other := NewJWTManager("other-secret", time.Hour)
	wrongKey, _ := other.Generate("ABC-123", member)

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Generate("ABC-123", member)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		GroupID:  "ABC-123",
		MemberID: "m-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", valid + "x"},
		{"wrong key", wrongKey},
		{"expired", expiredToken},
		{"alg none", noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
