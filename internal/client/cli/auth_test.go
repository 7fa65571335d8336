package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/vpopov/authgate/internal/client/api"
)

func stubInputs(t *testing.T, text string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAPI struct {
	// Register
	regEmail    string
	regUsername string
	regPassword string
	regResp     *api.AuthResponse
	regErr      error

	// Login
	loginUsername string
	loginPassword string
	loginResp     *api.AuthResponse
	loginErr      error

	// Profile
	profileToken string
	profileUser  *api.User
	profileErr   error
}

func (f *fakeAPI) Register(_ context.Context, email, username, password, firstName, lastName string) (*api.AuthResponse, error) {
	f.regEmail, f.regUsername, f.regPassword = email, username, password
	return f.regResp, f.regErr
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*api.AuthResponse, error) {
	f.loginUsername, f.loginPassword = username, password
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Profile(_ context.Context, accessToken string) (*api.User, error) {
	f.profileToken = accessToken
	return f.profileUser, f.profileErr
}

func TestRegister_StoresSession(t *testing.T) {
	f := &fakeAPI{regResp: &api.AuthResponse{
		AccessToken: "tok-1",
		User:        &api.User{ID: "u-1", Username: "alice"},
	}}
	a := &App{api: f}

	restore := stubInputs(t, "alice", []byte("secret1"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.regUsername != "alice" {
		t.Fatalf("Register username mismatch: %q", f.regUsername)
	}
	if f.regPassword != "secret1" {
		t.Fatalf("Register password mismatch: %q", f.regPassword)
	}
	if a.accessToken != "tok-1" || a.userName != "alice" {
		t.Fatalf("session not stored: token=%q user=%q", a.accessToken, a.userName)
	}
}

func TestRegister_RejectedKeepsLoggedOut(t *testing.T) {
	f := &fakeAPI{regErr: api.ErrUnauthorized}
	a := &App{api: f}

	restore := stubInputs(t, "alice", []byte("secret1"))
	defer restore()

	if err := a.Register(context.Background()); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if a.isLoggedIn() {
		t.Fatalf("expected logged-out state after rejected registration")
	}
}

func TestLogin_StoresSession(t *testing.T) {
	f := &fakeAPI{loginResp: &api.AuthResponse{
		AccessToken: "tok-2",
		User:        &api.User{ID: "u-1", Username: "alice"},
	}}
	a := &App{api: f}

	restore := stubInputs(t, "alice", []byte("secret1"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUsername != "alice" || f.loginPassword != "secret1" {
		t.Fatalf("credentials not propagated: %q / %q", f.loginUsername, f.loginPassword)
	}
	if a.accessToken != "tok-2" {
		t.Fatalf("token not stored: %q", a.accessToken)
	}
}

func TestLogin_RejectedKeepsLoggedOut(t *testing.T) {
	f := &fakeAPI{loginErr: api.ErrUnauthorized}
	a := &App{api: f}

	restore := stubInputs(t, "alice", []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if a.isLoggedIn() {
		t.Fatalf("expected logged-out state after rejected login")
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	a := &App{api: &fakeAPI{}, accessToken: "tok-1", userName: "alice"}
	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.accessToken != "" || a.userName != "" {
		t.Fatalf("session not cleared: token=%q user=%q", a.accessToken, a.userName)
	}
}

func TestProfile_NotLoggedIn(t *testing.T) {
	f := &fakeAPI{}
	a := &App{api: f}
	if err := a.Profile(context.Background()); err != nil {
		t.Fatalf("Profile err: %v", err)
	}
	if f.profileToken != "" {
		t.Fatalf("Profile should not call the server without a token")
	}
}

func TestProfile_StaleTokenClearsSession(t *testing.T) {
	f := &fakeAPI{profileErr: api.ErrUnauthorized}
	a := &App{api: f, accessToken: "tok-old", userName: "alice"}

	if err := a.Profile(context.Background()); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if a.isLoggedIn() {
		t.Fatalf("expected session cleared after rejected token")
	}
}

func TestProfile_Success(t *testing.T) {
	f := &fakeAPI{profileUser: &api.User{ID: "u-1", Username: "alice", Email: "a@x.com"}}
	a := &App{api: f, accessToken: "tok-1", userName: "alice"}

	if err := a.Profile(context.Background()); err != nil {
		t.Fatalf("Profile err: %v", err)
	}
	if f.profileToken != "tok-1" {
		t.Fatalf("token not sent: %q", f.profileToken)
	}
}
