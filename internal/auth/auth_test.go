package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arloliu/galacticbuf/errs"
	"github.com/arloliu/galacticbuf/value"
)

func TestUserStore_RegisterAndVerify(t *testing.T) {
	store := NewUserStore(bcrypt.MinCost)

	require.NoError(t, store.Register("alice", "pw1"))
	require.ErrorIs(t, store.Register("alice", "other"), errs.ErrUserExists)
	require.Equal(t, 1, store.Len())

	require.NoError(t, store.Verify("alice", "pw1"))
	require.ErrorIs(t, store.Verify("alice", "pw2"), errs.ErrInvalidCredentials)
	require.ErrorIs(t, store.Verify("bob", "pw1"), errs.ErrInvalidCredentials)
}

func TestUserStore_RegisterMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "pw"},
		{name: "empty password", username: "alice", password: ""},
		{name: "both empty"},
	}

	store := NewUserStore(bcrypt.MinCost)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, store.Register(tt.username, tt.password), errs.ErrMissingField)
		})
	}
	require.Zero(t, store.Len())
}

func TestUserStore_ConcurrentRegisterSameName(t *testing.T) {
	store := NewUserStore(bcrypt.MinCost)

	const n = 8
	results := make(chan error, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Register("carol", "pw")
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, errs.ErrUserExists)
	}
	require.Equal(t, 1, ok, "exactly one register wins")
}

func TestRequestFromObject(t *testing.T) {
	creds, err := RequestFromObject(value.NewObject(
		value.F("username", value.NewStr("alice")),
		value.F("password", value.NewStr("pw")),
	))
	require.NoError(t, err)
	require.Equal(t, Credentials{Username: "alice", Password: "pw"}, creds)

	_, err = RequestFromObject(value.NewObject(value.F("username", value.NewStr("alice"))))
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, err = RequestFromObject(value.NewObject(
		value.F("username", value.NewInt(7)),
		value.F("password", value.NewStr("pw")),
	))
	require.ErrorIs(t, err, errs.ErrMissingField, "wrong type counts as missing")
}

func TestTokenObject(t *testing.T) {
	obj := TokenObject("abc")
	token, ok := obj.GetString("token")
	require.True(t, ok)
	require.Equal(t, "abc", token)
	require.Equal(t, 1, obj.Len())
}

func TestTokenIssuer_IssueValidate(t *testing.T) {
	ti, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	token := ti.Issue("alice")
	require.Len(t, strings.Split(token, "."), 3)

	user, err := ti.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "alice", user)

	other, err := NewTokenIssuer("different", time.Hour)
	require.NoError(t, err)
	_, err = other.Validate(token)
	require.ErrorIs(t, err, errs.ErrInvalidToken, "foreign secret")
}

func TestTokenIssuer_Rejects(t *testing.T) {
	ti, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	good := ti.Issue("alice")
	parts := strings.Split(good, ".")

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "two parts", token: parts[0] + "." + parts[1]},
		{name: "four parts", token: good + ".x"},
		{name: "tampered user", token: "Ym9i." + parts[1] + "." + parts[2]},
		{name: "tampered time", token: parts[0] + ".1." + parts[2]},
		{name: "tampered sig", token: parts[0] + "." + parts[1] + ".AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ti.Validate(tt.token)
			require.ErrorIs(t, err, errs.ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	ti, err := NewTokenIssuer("secret", time.Minute)
	require.NoError(t, err)

	base := time.Unix(1_700_000_000, 0)
	ti.now = func() time.Time { return base }
	token := ti.Issue("alice")

	ti.now = func() time.Time { return base.Add(30 * time.Second) }
	_, err = ti.Validate(token)
	require.NoError(t, err)

	ti.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = ti.Validate(token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)

	ti.ttl = 0
	_, err = ti.Validate(token)
	require.NoError(t, err, "zero ttl never expires")
}

func TestTokenIssuer_RandomSecret(t *testing.T) {
	a, err := NewTokenIssuer("", 0)
	require.NoError(t, err)
	b, err := NewTokenIssuer("", 0)
	require.NoError(t, err)

	_, err = b.Validate(a.Issue("alice"))
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestFuncValidator(t *testing.T) {
	v := FuncValidator(func(token string) (string, error) {
		if token != "ok" {
			return "", errs.ErrInvalidToken
		}

		return "svc", nil
	})

	_, err := v.Validate("bad")
	require.ErrorIs(t, err, errs.ErrInvalidToken)
	user, err := v.Validate("ok")
	require.NoError(t, err)
	require.Equal(t, "svc", user)
}
