package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	t.Run("creates source with default extensions", func(t *testing.T) {
		source := New("/tmp/journal")

		require.NotNil(t, source)
		assert.Equal(t, "/tmp/journal", source.rootPath)
		assert.True(t, source.supported("entry.md"))
		assert.True(t, source.supported("entry.txt"))
		assert.False(t, source.supported("entry.pdf"))
	})

	t.Run("extension override replaces defaults", func(t *testing.T) {
		source := New("/tmp/journal", WithExtensions([]string{".org"}))

		assert.True(t, source.supported("entry.org"))
		assert.False(t, source.supported("entry.md"))
	})

	t.Run("extension match is case insensitive", func(t *testing.T) {
		source := New("/tmp/journal")

		assert.True(t, source.supported("ENTRY.MD"))
	})

	t.Run("implements EntrySource interface", func(t *testing.T) {
		source := New("/tmp/journal")
		var _ driven.EntrySource = source
	})
}

func TestSource_Validate(t *testing.T) {
	t.Run("accepts existing directory", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)

		assert.NoError(t, source.Validate(context.Background()))
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		source := New("/non/existent/journal")

		err := source.Validate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("rejects plain file", func(t *testing.T) {
		tempDir := t.TempDir()
		filePath := filepath.Join(tempDir, "not-a-dir.md")
		require.NoError(t, os.WriteFile(filePath, []byte("text"), 0644))

		source := New(filePath)

		err := source.Validate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}

func TestSource_FullScan(t *testing.T) {
	t.Run("streams entries from directory tree", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "2025"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "today.md"), []byte("Walked to the lake."), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "2025", "goals.txt"), []byte("Run more."), 0644))

		source := New(tempDir)
		entries, errs := source.FullScan(context.Background())

		collected := make(map[string]domain.RawEntry)
		for entry := range entries {
			collected[entry.ID] = entry
		}
		for err := range errs {
			require.NoError(t, err)
		}

		require.Len(t, collected, 2)
		assert.Equal(t, "Walked to the lake.", collected["today.md"].Text)
		assert.Equal(t, "today", collected["today.md"].Title)
		assert.Equal(t, "Run more.", collected["2025/goals.txt"].Text)
		assert.False(t, collected["today.md"].LastModified.IsZero())
	})

	t.Run("skips hidden files and directories", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, ".obsidian"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "visible.md"), []byte("seen"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".hidden.md"), []byte("unseen"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".obsidian", "config.md"), []byte("unseen"), 0644))

		source := New(tempDir)
		entries, _ := source.FullScan(context.Background())

		var ids []string
		for entry := range entries {
			ids = append(ids, entry.ID)
		}

		assert.Equal(t, []string{"visible.md"}, ids)
	})

	t.Run("skips unsupported extensions", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "entry.md"), []byte("keep"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "photo.jpg"), []byte{0xFF, 0xD8}, 0644))

		source := New(tempDir)
		entries, _ := source.FullScan(context.Background())

		var ids []string
		for entry := range entries {
			ids = append(ids, entry.ID)
		}

		assert.Equal(t, []string{"entry.md"}, ids)
	})

	t.Run("reports missing directory on error channel", func(t *testing.T) {
		source := New("/non/existent/journal")
		entries, errs := source.FullScan(context.Background())

		for range entries {
		}

		select {
		case err := <-errs:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not exist")
		case <-time.After(time.Second):
			t.Fatal("expected error for non-existent directory")
		}
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "entry.md"), []byte("text"), 0644))

		source := New(tempDir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		entries, errs := source.FullScan(ctx)

		// Channels must close without a terminal error
		for range entries {
		}
		for err := range errs {
			require.NoError(t, err)
		}
	})
}

func TestSource_Watch(t *testing.T) {
	t.Run("emits created event", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(filepath.Join(tempDir, "fresh.md"), []byte("new entry"), 0644)
		}()

		select {
		case change := <-changes:
			assert.Equal(t, domain.ChangeCreated, change.Type)
			assert.Equal(t, "fresh.md", change.Entry.ID)
			assert.Equal(t, "new entry", change.Entry.Text)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for create event")
		}
	})

	t.Run("emits updated event", func(t *testing.T) {
		tempDir := t.TempDir()
		target := filepath.Join(tempDir, "entry.md")
		require.NoError(t, os.WriteFile(target, []byte("initial"), 0644))

		source := New(tempDir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(target, []byte("revised"), 0644)
		}()

		select {
		case change := <-changes:
			// Editors may surface a save as create or write
			assert.Contains(t, []domain.ChangeType{domain.ChangeCreated, domain.ChangeUpdated}, change.Type)
			assert.Equal(t, "entry.md", change.Entry.ID)
			assert.Equal(t, "revised", change.Entry.Text)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for update event")
		}
	})

	t.Run("emits deleted event with ID only", func(t *testing.T) {
		tempDir := t.TempDir()
		target := filepath.Join(tempDir, "doomed.md")
		require.NoError(t, os.WriteFile(target, []byte("delete me"), 0644))

		source := New(tempDir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.Remove(target)
		}()

		select {
		case change := <-changes:
			assert.Equal(t, domain.ChangeDeleted, change.Type)
			assert.Equal(t, "doomed.md", change.Entry.ID)
			assert.Empty(t, change.Entry.Text)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for delete event")
		}
	})

	t.Run("ignores unsupported files", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "noise.tmp"), []byte("x"), 0644))

		select {
		case change := <-changes:
			t.Fatalf("unexpected change event: %+v", change)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("fails for missing directory", func(t *testing.T) {
		source := New("/non/existent/journal")

		changes, err := source.Watch(context.Background())
		require.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("closes channel on context cancellation", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		defer source.Close()

		ctx, cancel := context.WithCancel(context.Background())

		changes, err := source.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after cancellation")
		}
	})

	t.Run("fails after close", func(t *testing.T) {
		tempDir := t.TempDir()
		source := New(tempDir)
		require.NoError(t, source.Close())

		changes, err := source.Watch(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceClosed)
		assert.Nil(t, changes)
	})
}

func TestSource_Close(t *testing.T) {
	t.Run("close is idempotent", func(t *testing.T) {
		source := New("/tmp/journal")

		assert.NoError(t, source.Close())
		assert.NoError(t, source.Close())
	})
}

func TestSource_EntryID(t *testing.T) {
	t.Run("derives slash relative IDs", func(t *testing.T) {
		source := New(filepath.Join("/home", "user", "journal"))

		id := source.entryID(filepath.Join("/home", "user", "journal", "2025", "08", "hike.md"))
		assert.Equal(t, "2025/08/hike.md", id)
	})

	t.Run("same path yields same ID", func(t *testing.T) {
		source := New("/journal")

		first := source.entryID("/journal/entry.md")
		second := source.entryID("/journal/entry.md")
		assert.Equal(t, first, second)
	})
}
