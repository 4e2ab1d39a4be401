package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"model-fetcher/core/storage"
	"model-fetcher/core/storage/mocks"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func body(content string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(content))
}

func TestDownloadAll(t *testing.T) {
	t.Run("FolderPrefix", func(t *testing.T) {
		src := new(mocks.Source)
		src.On("List", mock.Anything, "simple_string/").
			Return([]string{"simple_string/1/model.graphdef", "simple_string/config.pbtxt"}, nil)
		src.On("Fetch", mock.Anything, "simple_string/1/model.graphdef").Return(body("graph"), nil).Once()
		src.On("Fetch", mock.Anything, "simple_string/config.pbtxt").Return(body("config"), nil).Once()

		fsys := afero.NewMemMapFs()
		err := storage.DownloadAll(context.Background(), src, fsys, "simple_string/", "dest_path", zap.NewNop())
		require.NoError(t, err)

		data, err := afero.ReadFile(fsys, "dest_path/1/model.graphdef")
		require.NoError(t, err)
		assert.Equal(t, "graph", string(data))

		data, err = afero.ReadFile(fsys, "dest_path/config.pbtxt")
		require.NoError(t, err)
		assert.Equal(t, "config", string(data))

		src.AssertExpectations(t)
	})

	t.Run("SingleObjectNamedByPrefix", func(t *testing.T) {
		src := new(mocks.Source)
		src.On("List", mock.Anything, "folder/somefile").Return([]string{"folder/somefile"}, nil)
		src.On("Fetch", mock.Anything, "folder/somefile").Return(body("payload"), nil).Once()

		fsys := afero.NewMemMapFs()
		err := storage.DownloadAll(context.Background(), src, fsys, "folder/somefile", "/mnt/out", zap.NewNop())
		require.NoError(t, err)

		data, err := afero.ReadFile(fsys, "/mnt/out/somefile")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("EmptyPrefix", func(t *testing.T) {
		src := new(mocks.Source)
		src.On("List", mock.Anything, "").Return([]string{"somefile", "somefolder/somefile"}, nil)
		src.On("Fetch", mock.Anything, "somefile").Return(body("a"), nil).Once()
		src.On("Fetch", mock.Anything, "somefolder/somefile").Return(body("b"), nil).Once()

		fsys := afero.NewMemMapFs()
		err := storage.DownloadAll(context.Background(), src, fsys, "", "/mnt/out", zap.NewNop())
		require.NoError(t, err)

		exists, _ := afero.Exists(fsys, "/mnt/out/somefile")
		assert.True(t, exists)
		exists, _ = afero.Exists(fsys, "/mnt/out/somefolder/somefile")
		assert.True(t, exists)
	})

	t.Run("EmptyListing", func(t *testing.T) {
		src := new(mocks.Source)
		src.On("List", mock.Anything, "missing/").Return([]string{}, nil)

		err := storage.DownloadAll(context.Background(), src, afero.NewMemMapFs(), "missing/", "/mnt/out", zap.NewNop())
		assert.NoError(t, err)
		src.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("ListError", func(t *testing.T) {
		listErr := errors.New("boom")
		src := new(mocks.Source)
		src.On("List", mock.Anything, "p/").Return(nil, listErr)

		err := storage.DownloadAll(context.Background(), src, afero.NewMemMapFs(), "p/", "/mnt/out", zap.NewNop())
		assert.ErrorIs(t, err, listErr)
		src.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	})

	t.Run("FetchFailureAborts", func(t *testing.T) {
		src := new(mocks.Source)
		src.On("List", mock.Anything, "p/").Return([]string{"p/one", "p/two", "p/three"}, nil)
		src.On("Fetch", mock.Anything, "p/one").Return(body("1"), nil).Once()
		src.On("Fetch", mock.Anything, "p/two").Return(nil, storage.ErrObjectNotFound).Once()

		fsys := afero.NewMemMapFs()
		err := storage.DownloadAll(context.Background(), src, fsys, "p/", "/mnt/out", zap.NewNop())
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)

		// The object written before the failure stays on disk; nothing after
		// the failure is attempted.
		exists, _ := afero.Exists(fsys, "/mnt/out/one")
		assert.True(t, exists)
		src.AssertNotCalled(t, "Fetch", mock.Anything, "p/three")
	})
}

// opsFs records directory creation and file writes so the per-object
// ordering can be asserted.
type opsFs struct {
	afero.Fs
	ops *[]string
}

func (f *opsFs) MkdirAll(path string, perm os.FileMode) error {
	*f.ops = append(*f.ops, "mkdir "+path)
	return f.Fs.MkdirAll(path, perm)
}

func (f *opsFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	*f.ops = append(*f.ops, "write "+name)
	return f.Fs.OpenFile(name, flag, perm)
}

// recordingSource appends fetch calls to the same op log.
type recordingSource struct {
	keys []string
	ops  *[]string
}

func (s *recordingSource) List(ctx context.Context, prefix string) ([]string, error) {
	return s.keys, nil
}

func (s *recordingSource) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	*s.ops = append(*s.ops, "fetch "+key)
	return body("x"), nil
}

func TestDownloadAll_Ordering(t *testing.T) {
	var ops []string
	prefix := "some/deep/blob/path"
	src := &recordingSource{
		keys: []string{prefix + "/f1", prefix + "/d1/f11", prefix + "/d1/d2/f21"},
		ops:  &ops,
	}
	fsys := &opsFs{Fs: afero.NewMemMapFs(), ops: &ops}

	err := storage.DownloadAll(context.Background(), src, fsys, prefix, "some/dest/path", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"mkdir some/dest/path",
		"fetch some/deep/blob/path/f1",
		"write some/dest/path/f1",
		"mkdir some/dest/path/d1",
		"fetch some/deep/blob/path/d1/f11",
		"write some/dest/path/d1/f11",
		"mkdir some/dest/path/d1/d2",
		"fetch some/deep/blob/path/d1/d2/f21",
		"write some/dest/path/d1/d2/f21",
	}, ops)
}
