package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds an unsigned token with the given payload. The client
// never verifies signatures, so "sig" is enough for decoding.
func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func TestStoreRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, store.Save("tok-abc"))
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", loaded)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDecodeClaims(t *testing.T) {
	tok := makeToken(t, map[string]any{
		"sub": "olena@shiftdesk.dev", "role": "employee", "uid": 7, "exp": 4102444800,
	})
	claims, err := DecodeClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "olena@shiftdesk.dev", claims.Sub)
	assert.Equal(t, RoleEmployee, claims.ResolvedRole())
	assert.Equal(t, int64(7), claims.UserID())
	assert.False(t, claims.Expired(time.Now()))
}

func TestDecodeClaimsRolesListFallback(t *testing.T) {
	tok := makeToken(t, map[string]any{"sub": "x", "roles": []string{"manager"}, "uid": "12"})
	claims, err := DecodeClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleManager, claims.ResolvedRole())
	assert.Equal(t, int64(12), claims.UserID(), "string uid is tolerated")
}

func TestDecodeClaimsMalformed(t *testing.T) {
	for _, tok := range []string{"", "nodots", "a.b", "a.!!!.c"} {
		_, err := DecodeClaims(tok)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", tok)
	}
}

func TestClaimsWithoutExpNeverExpire(t *testing.T) {
	assert.False(t, Claims{}.Expired(time.Now()))
	assert.True(t, Claims{Exp: time.Now().Add(-time.Hour).Unix()}.Expired(time.Now()))
}

func TestSignInAdoptsIdentityAndPersists(t *testing.T) {
	store := NewStore(t.TempDir())
	sess := New(store)
	tok := makeToken(t, map[string]any{"sub": "m@x", "role": "manager", "uid": 3})

	require.NoError(t, sess.SignIn(tok))
	assert.True(t, sess.Ready())
	assert.Equal(t, tok, sess.Token())
	assert.True(t, sess.IsManager())
	assert.Equal(t, int64(3), sess.UserID())

	// A fresh session against the same store restores the identity.
	again := New(store)
	require.NoError(t, again.Restore())
	assert.Equal(t, tok, again.Token())
	assert.Equal(t, RoleManager, again.Role())
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	store := NewStore(t.TempDir())
	expired := makeToken(t, map[string]any{
		"sub": "x", "role": "employee", "uid": 1, "exp": time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, store.Save(expired))

	sess := New(store)
	require.NoError(t, sess.Restore())
	assert.True(t, sess.Ready(), "the session is ready even without a credential")
	assert.Empty(t, sess.Token())
	assert.False(t, sess.IsManager())
}

func TestRestoreDiscardsUndecodableToken(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("not-a-jwt"))

	sess := New(store)
	require.NoError(t, sess.Restore())
	assert.Empty(t, sess.Token())
}

func TestSignOutClearsEverything(t *testing.T) {
	store := NewStore(t.TempDir())
	sess := New(store)
	tok := makeToken(t, map[string]any{"sub": "x", "role": "employee", "uid": 1})
	require.NoError(t, sess.SignIn(tok))

	require.NoError(t, sess.SignOut())
	assert.Empty(t, sess.Token())
	assert.Equal(t, int64(0), sess.UserID())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSignInRejectsMalformedToken(t *testing.T) {
	store := NewStore(t.TempDir())
	sess := New(store)
	require.Error(t, sess.SignIn("garbage"))
	assert.Empty(t, sess.Token())
}
