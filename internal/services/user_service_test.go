package services

import (
	"testing"

	"hearth/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db)

	user, err := svc.CreateUser("Alice@Example.com", "s3cret", "Alice")
	testutil.AssertNoError(t, err)
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Password == "s3cret" {
		t.Error("expected password to be hashed")
	}
	if !svc.VerifyPassword(user, "s3cret") {
		t.Error("expected password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}

	_, err = svc.CreateUser("alice@example.com", "other", "Alice Again")
	testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
}

func TestAttemptLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db)

	_, err := svc.CreateUser("bob@example.com", "hunter2", "Bob")
	testutil.AssertNoError(t, err)

	user, err := svc.AttemptLogin("bob@example.com", "hunter2")
	testutil.AssertNoError(t, err)
	if user.Email != "bob@example.com" {
		t.Errorf("unexpected user %q", user.Email)
	}

	// Unknown email and wrong password are indistinguishable.
	_, err = svc.AttemptLogin("nobody@example.com", "hunter2")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	_, err = svc.AttemptLogin("bob@example.com", "wrong")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.db)

	user, err := svc.CreateUser("carol@example.com", "pw", "Carol")
	testutil.AssertNoError(t, err)

	err = svc.StoreRefreshTokenHash(user.ID, "deadbeef")
	testutil.AssertNoError(t, err)
	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "deadbeef" {
		t.Errorf("expected stored hash, got %q", hash)
	}

	err = svc.StoreRefreshTokenHash("missing-id", "x")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
