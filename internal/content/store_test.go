package content

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSubscribe(t *testing.T) {
	first := &Content{Site: Site{Owner: "first"}}
	store := NewStore(first)
	assert.Same(t, first, store.Current())

	updates, cancel := store.Subscribe()
	assert.Equal(t, 1, store.Subscribers())

	second := &Content{Site: Site{Owner: "second"}}
	third := &Content{Site: Site{Owner: "third"}}
	store.Set(second)
	store.Set(third)

	assert.Same(t, third, <-updates, "only the latest update is kept")
	assert.Same(t, third, store.Current())

	cancel()
	cancel()
	assert.Equal(t, 0, store.Subscribers())
	_, open := <-updates
	assert.False(t, open)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := createTestYAML(t, minimalYAML)
	initial, err := Load(path)
	require.NoError(t, err)

	store := NewStore(initial)
	updates, cancel := store.Subscribe()
	defer cancel()

	logger, _ := test.NewNullLogger()
	w, err := NewWatcher(path, store, logger)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start(), "second start is rejected")

	// Allow fsnotify to register the watch.
	time.Sleep(100 * time.Millisecond)

	updated := `
site:
  owner: "Updated Owner"
typing:
  hero:
    phrases: ["three"]
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case c := <-updates:
		assert.Equal(t, "Updated Owner", c.Site.Owner)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for content reload")
	}
	require.Eventually(t, func() bool {
		return store.Current().Site.Owner == "Updated Owner"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcherKeepsContentOnInvalidEdit(t *testing.T) {
	path := createTestYAML(t, minimalYAML)
	initial, err := Load(path)
	require.NoError(t, err)
	store := NewStore(initial)

	logger, hook := test.NewNullLogger()
	w, err := NewWatcher(path, store, logger)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("typing:\n  hero: {typing_speed_ms: -10}\n"), 0644))

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)
	assert.Same(t, initial, store.Current())
}

func TestWatcherReload(t *testing.T) {
	path := createTestYAML(t, minimalYAML)
	store := NewStore(nil)
	w, err := NewWatcher(path, store, nil)
	require.NoError(t, err)

	require.NoError(t, w.Reload())
	require.NotNil(t, store.Current())
	assert.Equal(t, "Test Owner", store.Current().Site.Owner)

	w.Stop()
}
