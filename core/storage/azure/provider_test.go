package azure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"model-fetcher/core/storage"
)

// fakeClient serves a fixed key set and records fetches. When authFail is set
// every List fails with an authentication error.
type fakeClient struct {
	keys     []string
	data     map[string]string
	authFail bool
	fetched  []string
}

func (c *fakeClient) List(ctx context.Context, prefix string) ([]string, error) {
	if c.authFail {
		return nil, fmt.Errorf("%w: 403", storage.ErrAuthentication)
	}
	return c.keys, nil
}

func (c *fakeClient) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	c.fetched = append(c.fetched, key)
	return io.NopCloser(bytes.NewBufferString(c.data[key])), nil
}

type fakeTokens struct {
	token string
	err   error
	calls int
}

func (t *fakeTokens) Token(ctx context.Context) (string, error) {
	t.calls++
	return t.token, t.err
}

const testURI = "https://acct.blob.core.windows.net/container/simple_string/"

func TestProvider_Download(t *testing.T) {
	t.Run("AnonymousSuccess", func(t *testing.T) {
		client := &fakeClient{
			keys: []string{"simple_string/config.pbtxt"},
			data: map[string]string{"simple_string/config.pbtxt": "cfg"},
		}
		tokens := &fakeTokens{token: "tok"}
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			assert.Equal(t, "https://acct.blob.core.windows.net", endpoint)
			assert.Equal(t, "container", container)
			assert.Equal(t, "", token)
			return client, nil
		}

		fsys := afero.NewMemMapFs()
		p := newProvider(factory, tokens, fsys, zap.NewNop())

		err := p.Download(context.Background(), testURI, "/mnt/models")
		require.NoError(t, err)
		assert.Equal(t, 0, tokens.calls)

		data, err := afero.ReadFile(fsys, "/mnt/models/config.pbtxt")
		require.NoError(t, err)
		assert.Equal(t, "cfg", string(data))
	})

	t.Run("TokenFallback", func(t *testing.T) {
		anon := &fakeClient{authFail: true}
		authed := &fakeClient{
			keys: []string{"simple_string/1/model.graphdef", "simple_string/config.pbtxt"},
			data: map[string]string{
				"simple_string/1/model.graphdef": "graph",
				"simple_string/config.pbtxt":     "cfg",
			},
		}
		tokens := &fakeTokens{token: "bearer-token"}
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			if token == "" {
				return anon, nil
			}
			assert.Equal(t, "bearer-token", token)
			return authed, nil
		}

		fsys := afero.NewMemMapFs()
		p := newProvider(factory, tokens, fsys, zap.NewNop())

		err := p.Download(context.Background(), testURI, "/mnt/models")
		require.NoError(t, err)
		assert.Equal(t, 1, tokens.calls)
		assert.Empty(t, anon.fetched)

		data, err := afero.ReadFile(fsys, "/mnt/models/1/model.graphdef")
		require.NoError(t, err)
		assert.Equal(t, "graph", string(data))
	})

	t.Run("TerminalAuthFailure", func(t *testing.T) {
		client := &fakeClient{authFail: true}
		tokens := &fakeTokens{token: "tok"}
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			return client, nil
		}

		fsys := afero.NewMemMapFs()
		p := newProvider(factory, tokens, fsys, zap.NewNop())

		err := p.Download(context.Background(), testURI, "/mnt/models")
		assert.True(t, storage.IsAuthentication(err))
		assert.Equal(t, 1, tokens.calls)
		assert.Empty(t, client.fetched)

		// Nothing reached the filesystem.
		empty, err := afero.IsEmpty(fsys, "/")
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("TokenAcquisitionError", func(t *testing.T) {
		client := &fakeClient{authFail: true}
		tokens := &fakeTokens{err: ErrNoCredentials}
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			return client, nil
		}

		p := newProvider(factory, tokens, afero.NewMemMapFs(), zap.NewNop())
		err := p.Download(context.Background(), testURI, "/mnt/models")
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("MalformedURI", func(t *testing.T) {
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			t.Fatal("factory must not be called for a malformed uri")
			return nil, nil
		}

		p := newProvider(factory, &fakeTokens{}, afero.NewMemMapFs(), zap.NewNop())
		err := p.Download(context.Background(), "https://acct.blob.core.windows.net/", "/mnt/models")
		assert.ErrorIs(t, err, storage.ErrMalformedURI)
	})

	t.Run("NonAuthListError", func(t *testing.T) {
		listErr := errors.New("connection reset")
		factory := func(endpoint, container, token string) (storage.ObjectSource, error) {
			return &failingClient{err: listErr}, nil
		}
		tokens := &fakeTokens{token: "tok"}

		p := newProvider(factory, tokens, afero.NewMemMapFs(), zap.NewNop())
		err := p.Download(context.Background(), testURI, "/mnt/models")
		assert.ErrorIs(t, err, listErr)
		assert.Equal(t, 0, tokens.calls)
	})
}

type failingClient struct {
	err error
}

func (c *failingClient) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, c.err
}

func (c *failingClient) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, c.err
}

func TestProvider_CanHandle(t *testing.T) {
	p := NewProvider(Config{}, afero.NewMemMapFs(), zap.NewNop())

	assert.True(t, p.CanHandle("https://acct.blob.core.windows.net/container/prefix"))
	assert.True(t, p.CanHandle("https://acct.blob.core.windows.net/"))
	assert.False(t, p.CanHandle("https://example.com/model.tar.gz"))
	assert.False(t, p.CanHandle("s3://bucket/prefix"))
	assert.False(t, p.CanHandle("gs://bucket/prefix"))
}
