// Copyright (c) 2026 FileManageSystem. All rights reserved.
// Author: dinhvu.nguyen.dev@gmail.com

package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenDinhVu2003/FileManageSystem/internal/session"
)

/*
TestMemoryStorage_NoEchoToOrigin verifies the storage-event contract: a
change fans out to sibling contexts but never to the one that made it.
*/
func TestMemoryStorage_NoEchoToOrigin(t *testing.T) {
	broadcaster := session.NewBroadcaster()
	origin := broadcaster.Context()
	sibling := broadcaster.Context()

	origin.Set("access_token", "token-1")

	select {
	case change := <-sibling.Watch():
		assert.Equal(t, "access_token", change.Key)
		require.NotNil(t, change.NewValue)
		assert.Equal(t, "token-1", *change.NewValue)
	case <-time.After(time.Second):
		t.Fatal("sibling context never observed the change")
	}

	select {
	case change := <-origin.Watch():
		t.Fatalf("origin observed its own change: %+v", change)
	default:
	}
}

/*
TestMemoryStorage_SharedValues verifies all contexts read the same area and
removal is observed as a nil NewValue.
*/
func TestMemoryStorage_SharedValues(t *testing.T) {
	broadcaster := session.NewBroadcaster()
	first := broadcaster.Context()
	second := broadcaster.Context()

	first.Set("user_data", "{}")
	value, ok := second.Get("user_data")
	require.True(t, ok)
	assert.Equal(t, "{}", value)

	second.Remove("user_data")
	_, ok = first.Get("user_data")
	assert.False(t, ok)

	change := <-first.Watch()
	assert.Equal(t, "user_data", change.Key)
	assert.Nil(t, change.NewValue)
}

/*
TestFileStorage_RoundTrip verifies values survive a close-and-reopen cycle
and that a corrupt state file reads as empty.
*/
func TestFileStorage_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := session.NewFileStorage(path)
	require.NoError(t, err)
	first.Set("access_token", "token-1")
	first.Set("expires_at", "1780000000000")
	first.Remove("expires_at")
	first.Close()

	second, err := session.NewFileStorage(path)
	require.NoError(t, err)
	defer second.Close()

	token, ok := second.Get("access_token")
	require.True(t, ok)
	assert.Equal(t, "token-1", token)
	_, ok = second.Get("expires_at")
	assert.False(t, ok)

	// Corrupt file: loads as empty, no error.
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	third, err := session.NewFileStorage(path)
	require.NoError(t, err)
	defer third.Close()
	_, ok = third.Get("access_token")
	assert.False(t, ok)
}

/*
TestFileStorage_ObservesExternalWrites verifies the modtime poller emits a
change when another process rewrites the state file.
*/
func TestFileStorage_ObservesExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	storage, err := session.NewFileStorage(path)
	require.NoError(t, err)
	defer storage.Close()
	storage.Set("access_token", "token-1")

	// Simulate another process removing the token. The file timestamp must
	// move for the poller to notice.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case change := <-storage.Watch():
		assert.Equal(t, "access_token", change.Key)
		assert.Nil(t, change.NewValue)
	case <-time.After(5 * time.Second):
		t.Fatal("external write never observed")
	}

	_, ok := storage.Get("access_token")
	assert.False(t, ok)
}
