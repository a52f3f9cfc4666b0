package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/authstate/session"
	"golang.org/x/oauth2"
)

func testSession() *session.Session {
	return &session.Session{
		User: session.User{ID: "u1", Email: "a@b.com", UserMetadata: &session.UserMetadata{Name: "Al"}},
		Token: &oauth2.Token{
			AccessToken:  "access",
			TokenType:    "bearer",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
		},
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	var testCases = []struct {
		description string
		store       Store
	}{
		{description: "memory", store: NewMemoryStore()},
		{description: "file", store: NewFileStore(filepath.Join(dir, "nested", "session.json"))},
	}
	for _, testCase := range testCases {
		aStore := testCase.store
		loaded, err := aStore.LoadSession(ctx)
		require.NoError(t, err, testCase.description)
		assert.Nil(t, loaded, testCase.description)

		expected := testSession()
		require.NoError(t, aStore.SaveSession(ctx, expected), testCase.description)
		loaded, err = aStore.LoadSession(ctx)
		require.NoError(t, err, testCase.description)
		require.NotNil(t, loaded, testCase.description)
		assert.Equal(t, expected.User, loaded.User, testCase.description)
		assert.Equal(t, expected.Token.AccessToken, loaded.Token.AccessToken, testCase.description)

		_, ok, err := aStore.TakeCodeVerifier(ctx)
		require.NoError(t, err, testCase.description)
		assert.False(t, ok, testCase.description)
		require.NoError(t, aStore.PutCodeVerifier(ctx, "verifier"), testCase.description)
		verifier, ok, err := aStore.TakeCodeVerifier(ctx)
		require.NoError(t, err, testCase.description)
		assert.True(t, ok, testCase.description)
		assert.Equal(t, "verifier", verifier, testCase.description)
		_, ok, _ = aStore.TakeCodeVerifier(ctx)
		assert.False(t, ok, testCase.description)

		require.NoError(t, aStore.DeleteSession(ctx), testCase.description)
		loaded, err = aStore.LoadSession(ctx)
		require.NoError(t, err, testCase.description)
		assert.Nil(t, loaded, testCase.description)
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "session.json")
	first := NewFileStore(location)
	expected := testSession()
	require.NoError(t, first.SaveSession(ctx, expected))

	second := NewFileStore(location)
	loaded, err := second.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, "refresh", loaded.Token.RefreshToken)
	assert.True(t, expected.Token.Expiry.Equal(loaded.Token.Expiry))

	require.NoError(t, second.DeleteSession(ctx))
	_, err = os.Stat(location)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_CorruptFile(t *testing.T) {
	location := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(location, []byte("{not json"), 0o600))
	_, err := NewFileStore(location).LoadSession(context.Background())
	assert.Error(t, err)
}

func TestMemoryStore_WithSession(t *testing.T) {
	expected := testSession()
	loaded, err := NewMemoryStore(WithSession(expected)).LoadSession(context.Background())
	require.NoError(t, err)
	assert.Same(t, expected, loaded)
}
