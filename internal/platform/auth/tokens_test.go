package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssuePairRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)
	userID := uuid.New()

	pair, err := issuer.IssuePair(userID, "doctor")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	access, err := issuer.Parse(pair.Access, TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if access.Subject != userID.String() {
		t.Errorf("subject = %q, want %q", access.Subject, userID)
	}
	if access.Role != "doctor" {
		t.Errorf("role = %q, want doctor", access.Role)
	}
	if access.ID == "" {
		t.Error("access token missing jti")
	}

	refresh, err := issuer.Parse(pair.Refresh, TokenTypeRefresh)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if refresh.ID == access.ID {
		t.Error("access and refresh share a jti")
	}
}

func TestParseRejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)

	pair, err := issuer.IssuePair(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := issuer.Parse(pair.Access, TokenTypeRefresh); err == nil {
		t.Error("access token accepted as refresh")
	}
	if _, err := issuer.Parse(pair.Refresh, TokenTypeAccess); err == nil {
		t.Error("refresh token accepted as access")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute, 168*time.Hour)

	token, err := issuer.IssueAccess(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.Parse(token, TokenTypeAccess); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)
	other := NewTokenIssuer("another-secret-another-secret-32", 15*time.Minute, 168*time.Hour)

	token, err := other.IssueAccess(uuid.New(), "admin")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := issuer.Parse(token, TokenTypeAccess); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
