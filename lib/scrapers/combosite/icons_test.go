package combosite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIconCache(t *testing.T) {
	t.Run("fetches and writes once", func(t *testing.T) {
		s := newSite(t)
		out := t.TempDir()
		c := s.client(out)

		c.Icons.EnsureDownloaded(context.Background(), "/img/1.png")
		c.Icons.EnsureDownloaded(context.Background(), "/img/1.png")

		require.Equal(t, 1, s.count("/img/1.png"))
		contents, err := os.ReadFile(filepath.Join(out, IconDirName, "1.png"))
		require.NoError(t, err)
		require.Equal(t, "icon:/img/1.png", string(contents))

		entries, err := os.ReadDir(filepath.Join(out, IconDirName))
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("existing files are not fetched", func(t *testing.T) {
		s := newSite(t)
		out := t.TempDir()
		dir := filepath.Join(out, IconDirName)
		require.NoError(t, os.MkdirAll(dir, 0777))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "1.png"), []byte("cached"), 0644))

		c := s.client(out)
		require.NoError(t, c.Icons.Download(context.Background(), "/img/1.png"))

		require.Equal(t, 0, s.count("/img/1.png"))
		contents, err := os.ReadFile(filepath.Join(dir, "1.png"))
		require.NoError(t, err)
		require.Equal(t, "cached", string(contents))
	})

	t.Run("absolute and relative urls", func(t *testing.T) {
		s := newSite(t)
		out := t.TempDir()
		c := s.client(out)

		require.NoError(t, c.Icons.Download(context.Background(), s.server.URL+"/img/abs.png"))
		require.NoError(t, c.Icons.Download(context.Background(), "img/rel.png"))

		require.Equal(t, 1, s.count("/img/abs.png"))
		require.Equal(t, 1, s.count("/img/rel.png"))
		require.FileExists(t, filepath.Join(out, IconDirName, "abs.png"))
		require.FileExists(t, filepath.Join(out, IconDirName, "rel.png"))
	})

	t.Run("failures are reported and not retried", func(t *testing.T) {
		s := newSite(t)
		out := t.TempDir()
		c := s.client(out)

		err := c.Icons.Download(context.Background(), "/img/missing.png")
		var downloadErr *DownloadError
		require.True(t, errors.As(err, &downloadErr))
		require.Equal(t, s.server.URL+"/img/missing.png", downloadErr.URL)
		require.NoFileExists(t, filepath.Join(out, IconDirName, "missing.png"))

		// must not panic or propagate
		c.Icons.EnsureDownloaded(context.Background(), "/img/missing.png")
		require.Equal(t, 1, s.count("/img/missing.png"))

		err = c.Icons.Download(context.Background(), "")
		require.True(t, errors.As(err, &downloadErr))
	})
}
