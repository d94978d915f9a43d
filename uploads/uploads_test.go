package uploads

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"evenza/globals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForTask(t *testing.T, reg *Registry, id string) Task {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		task, ok := reg.Get(id)
		require.True(t, ok)
		if task.Status != "uploading" {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timeout waiting for upload task")
	return Task{}
}

func TestRegistryCompletesUpload(t *testing.T) {
	old := globals.UploadRoot
	globals.UploadRoot = t.TempDir()
	t.Cleanup(func() { globals.UploadRoot = old })

	reg := NewRegistry()
	content := bytes.Repeat([]byte("x"), 200<<10)
	id := reg.Start(content, "banner.bin", "eventpic")

	task := waitForTask(t, reg, id)
	assert.Equal(t, "done", task.Status)
	assert.Equal(t, 100, task.Progress)
	require.NotEmpty(t, task.URL)

	written, err := os.ReadFile(filepath.Join(globals.UploadRoot, "eventpic", id+".bin"))
	require.NoError(t, err)
	assert.Equal(t, len(content), len(written))
}

func TestRegistryUnknownTask(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("nope")
	assert.False(t, ok)
	assert.False(t, reg.Cancel("nope"))
}

func TestCanceledTaskStaysCanceled(t *testing.T) {
	reg := NewRegistry()

	// Drive the state transitions directly; the writer goroutine observes
	// cancellation between chunks, so a finished cancel must not be
	// overwritten by a late error.
	id := reg.add("big.bin", func() {})
	reg.mu.Lock()
	reg.tasks[id].Status = "canceled"
	reg.mu.Unlock()

	reg.finish(id, "", assert.AnError)
	task, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, "canceled", task.Status)
	assert.Empty(t, task.Error)
}

func TestTaskIdentityIsStable(t *testing.T) {
	old := globals.UploadRoot
	globals.UploadRoot = t.TempDir()
	t.Cleanup(func() { globals.UploadRoot = old })

	reg := NewRegistry()
	a := reg.Start([]byte("aaa"), "a.bin", "eventpic")
	b := reg.Start([]byte("bbb"), "b.bin", "eventpic")
	require.NotEqual(t, a, b)

	// Cancelling one task never disturbs the other's record.
	reg.Cancel(a)
	waitForTask(t, reg, b)
	taskB, ok := reg.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b.bin", taskB.Filename)
}
