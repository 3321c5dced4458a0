package daub

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ShouldNotifyOnWrite(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "paint.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(script, []byte("clear\n"), 0644))

	done := make(chan struct{})
	changed := make(chan string, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(done, []string{script}, func(name string) {
			select {
			case changed <- name:
			default:
			}
		})
	}()

	abs, err := filepath.Abs(script)
	require.NoError(t, err)

	// The watcher is set up asynchronously, so keep writing until an event arrives.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case name := <-changed:
			assert.Equal(t, abs, name)
			break loop
		case <-ticker.C:
			require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
			require.NoError(t, os.WriteFile(script, []byte("up\n"), 0644))
		case <-deadline:
			t.Fatal("no change notification received")
		}
	}

	close(done)
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatch_MissingDirectoryShouldFail(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	err := Watch(done, []string{filepath.Join(t.TempDir(), "missing", "paint.txt")}, func(string) {})
	assert.Error(t, err)
}
