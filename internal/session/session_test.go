package session

import (
	"context"
	"errors"
	"testing"
)

type fakeAuth struct {
	restoreAcct Account
	restoreOK   bool
	restoreErr  error
	signInErr   error
	signUpErr   error
	signOutErr  error
	adminFlag   bool
	adminErr    error
}

func (f *fakeAuth) SignUp(_ context.Context, email, _ string) (Account, error) {
	if f.signUpErr != nil {
		return Account{}, f.signUpErr
	}
	return Account{UserID: 7, Email: email}, nil
}
func (f *fakeAuth) SignIn(_ context.Context, email, _ string) (Account, error) {
	if f.signInErr != nil {
		return Account{}, f.signInErr
	}
	return Account{UserID: 7, Email: email}, nil
}
func (f *fakeAuth) SignOut(context.Context) error { return f.signOutErr }
func (f *fakeAuth) Restore(context.Context) (Account, bool, error) {
	return f.restoreAcct, f.restoreOK, f.restoreErr
}
func (f *fakeAuth) AdminFlag(context.Context, uint64) (bool, error) {
	return f.adminFlag, f.adminErr
}

func TestStartsInLoading(t *testing.T) {
	m := NewManager(&fakeAuth{})
	if m.State() != StateLoading {
		t.Fatalf("state = %v, want loading", m.State())
	}
}

func TestStartResolvesStoredSession(t *testing.T) {
	m := NewManager(&fakeAuth{restoreAcct: Account{UserID: 3, Email: "a@x.com"}, restoreOK: true})
	m.Start(context.Background())
	if m.State() != StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", m.State())
	}
	acct, ok := m.Account()
	if !ok || acct.Email != "a@x.com" {
		t.Fatalf("account = %+v ok=%v", acct, ok)
	}
}

func TestStartWithoutSessionGoesAnonymous(t *testing.T) {
	m := NewManager(&fakeAuth{restoreOK: false})
	m.Start(context.Background())
	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", m.State())
	}
}

func TestStartRestoreErrorGoesAnonymous(t *testing.T) {
	m := NewManager(&fakeAuth{restoreErr: errors.New("network down")})
	m.Start(context.Background())
	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", m.State())
	}
}

func TestSignInFailureKeepsStateAndReturnsError(t *testing.T) {
	wantErr := errors.New("invalid credentials")
	m := NewManager(&fakeAuth{signInErr: wantErr})
	m.Start(context.Background())

	err := m.SignIn(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want the API error unchanged", err)
	}
	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous after failed sign-in", m.State())
	}
}

func TestSignOutGoesAnonymousEvenOnServerError(t *testing.T) {
	f := &fakeAuth{restoreAcct: Account{UserID: 3}, restoreOK: true, signOutErr: errors.New("boom")}
	m := NewManager(f)
	m.Start(context.Background())

	if err := m.SignOut(context.Background()); err == nil {
		t.Fatal("expected sign-out error surfaced")
	}
	if m.State() != StateAnonymous {
		t.Fatalf("state = %v, want anonymous", m.State())
	}
	if _, ok := m.Account(); ok {
		t.Fatal("account still present after sign-out")
	}
}

func TestIsAdminPendingReadsFalse(t *testing.T) {
	f := &fakeAuth{restoreAcct: Account{UserID: 3}, restoreOK: true, adminErr: errors.New("timeout")}
	m := NewManager(f)
	m.Start(context.Background())
	if m.IsAdmin() {
		t.Fatal("admin flag pending must read as not authorized")
	}

	f.adminErr = nil
	f.adminFlag = true
	m.refreshAdmin(context.Background(), 3)
	if !m.IsAdmin() {
		t.Fatal("admin flag not applied after successful fetch")
	}
}

func TestSubscribeSeesTransitions(t *testing.T) {
	m := NewManager(&fakeAuth{restoreOK: false})
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Start(context.Background())
	select {
	case s := <-ch:
		if s != StateAnonymous {
			t.Fatalf("got %v, want anonymous", s)
		}
	default:
		t.Fatal("no transition delivered")
	}

	if err := m.SignIn(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatal(err)
	}
	select {
	case s := <-ch:
		if s != StateAuthenticated {
			t.Fatalf("got %v, want authenticated", s)
		}
	default:
		t.Fatal("no transition delivered after sign-in")
	}
}
