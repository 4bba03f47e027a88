package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/MosinFAM/comment-widget/internal/config"
	"github.com/MosinFAM/comment-widget/internal/models"
	"github.com/MosinFAM/comment-widget/internal/storage"
	"github.com/MosinFAM/comment-widget/internal/storage/storagetest"
	"github.com/MosinFAM/comment-widget/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatState(t *testing.T) {
	st, _ := widget.NewState().Apply(models.Page{
		Comments: []models.Comment{{ID: 3, Name: "alice", Content: "hello"}},
		Total:    6,
	})

	assert.Equal(t, "Page 1/2 (6 comments)\n  #3 alice: hello\n", formatState(st))

	empty, _ := widget.NewState().Apply(models.Page{})
	empty = empty.Fail(errors.New("offline"))
	assert.Equal(t, "Page 1/1 (0 comments)\n  no comments\n  ! offline\n", formatState(empty))
}

func TestNewStorage(t *testing.T) {
	_, ok := newStorage(&config.Config{Store: config.StoreConfig{Type: config.StoreMemory}}, nil).(*storage.MemoryStorage)
	assert.True(t, ok)

	httpStore, ok := newStorage(&config.Config{Store: config.StoreConfig{
		Type:    config.StoreHTTP,
		BaseURL: "http://localhost:8080/",
	}}, nil).(*storage.HTTPStorage)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080", httpStore.BaseURL)
}

func TestCommands_AgainstStore(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append(args, "--base-url", srv.URL, "--log-level", "error"))
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	out, err := run("add", "alice", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 alice: hello")
	assert.Equal(t, int64(1), srv.Adds())

	_, err = run("add", "", "hello")
	assert.Error(t, err)
	assert.Equal(t, int64(1), srv.Adds())

	out, err = run("list", "--page", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1/1 (1 comments)")

	out, err = run("delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "no comments")
	assert.Equal(t, []int64{1}, srv.DeletedIDs())

	_, err = run("delete", "abc")
	assert.Error(t, err)
}

func TestWatch_StopsWhenFirstPageFails(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	rootCmd.SetArgs([]string{"watch", "--page", "0", "--base-url", srv.URL, "--log-level", "error"})
	err := rootCmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, storage.ErrInvalidPage)

	srv.FailWith(http.StatusServiceUnavailable)
	rootCmd.SetArgs([]string{"watch", "--page", "10", "--base-url", srv.URL, "--log-level", "error"})
	err = rootCmd.ExecuteContext(context.Background())
	var netErr *storage.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.Status)
	assert.NotContains(t, out.String(), "Page 10/")
	assert.Equal(t, int64(1), srv.Gets())
}
