package storage_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MosinFAM/comment-widget/internal/storage"
	"github.com/MosinFAM/comment-widget/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStorage_RoundTrip(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()

	client := storage.NewHTTPStorage(srv.URL, srv.Client(), nil)
	ctx := context.Background()

	added, err := client.AddComment(ctx, "alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), added.ID)
	assert.Equal(t, "alice", added.Name)

	page, err := client.GetComments(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "hello", page.Comments[0].Content)

	require.NoError(t, client.DeleteComment(ctx, added.ID))
	assert.Equal(t, []int64{1}, srv.DeletedIDs())

	page, err = client.GetComments(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Comments)
	assert.Empty(t, page.Comments)
}

func TestHTTPStorage_DeleteMissing(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()

	client := storage.NewHTTPStorage(srv.URL, srv.Client(), nil)

	err := client.DeleteComment(context.Background(), 42)

	var nerr *storage.NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, http.StatusNotFound, nerr.Status)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHTTPStorage_ServerFailure(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()
	srv.FailWith(http.StatusServiceUnavailable)

	client := storage.NewHTTPStorage(srv.URL, srv.Client(), nil)

	_, err := client.GetComments(context.Background(), 1, 5)

	var nerr *storage.NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, "get", nerr.Op)
	assert.Equal(t, http.StatusServiceUnavailable, nerr.Status)
	assert.Equal(t, "injected failure", nerr.Msg)

	_, err = client.AddComment(context.Background(), "alice", "hello")
	assert.Error(t, err)
	assert.Error(t, client.DeleteComment(context.Background(), 1))

	// Отклонённые запросы тоже учитываются
	assert.Equal(t, int64(1), srv.Gets())
	assert.Equal(t, int64(1), srv.Adds())
	assert.Equal(t, int64(1), srv.Deletes())
	assert.Zero(t, srv.Store.Len())
}

func TestHTTPStorage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := storage.NewHTTPStorage(url, &http.Client{Timeout: time.Second}, nil)

	_, err := client.GetComments(context.Background(), 1, 5)

	var nerr *storage.NetworkError
	require.True(t, errors.As(err, &nerr))
	assert.Zero(t, nerr.Status)
	assert.Error(t, nerr.Err)
}

func TestHTTPStorage_RequestShape(t *testing.T) {
	var (
		gotPath, gotQuery, gotMethod, gotType, gotID string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery, gotMethod = r.URL.Path, r.URL.RawQuery, r.Method
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := storage.NewHTTPStorage(srv.URL+"/", srv.Client(), nil)
	ctx := context.Background()

	// Тело ответа на delete игнорируется
	require.NoError(t, client.DeleteComment(ctx, 7))
	assert.Equal(t, "/comment/delete", gotPath)
	assert.Equal(t, "id=7", gotQuery)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.NotEmpty(t, gotID)

	_, err := client.AddComment(ctx, "alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "/comment/add", gotPath)
	assert.Equal(t, "application/json", gotType)

	// А ответ на get обязан разбираться
	_, err = client.GetComments(ctx, 2, 5)
	assert.Error(t, err)
	assert.Equal(t, "/comment/get", gotPath)
	assert.Equal(t, "page=2&size=5", gotQuery)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestHTTPStorage_InvalidPage(t *testing.T) {
	srv := storagetest.NewServer()
	defer srv.Close()

	client := storage.NewHTTPStorage(srv.URL, srv.Client(), nil)

	_, err := client.GetComments(context.Background(), 0, 5)
	assert.ErrorIs(t, err, storage.ErrInvalidPage)
	assert.Zero(t, srv.Gets())
}
