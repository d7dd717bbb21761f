package iofetch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/retroevo/capsid/internal/iofetch"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.New()
	cfg.UniProt.BaseURL = baseURL
	cfg.UniProt.RetryCount = 2
	cfg.UniProt.RetryBackoff = 0.001
	return cfg
}

func testDataset() datasets.Dataset {
	return datasets.Dataset{
		ID:    1,
		Name:  "test_dataset",
		Query: "gene:gag",
	}
}

func TestDownloadPaginates(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"results":[
					{"primaryAccession":"P3","uniProtkbId":"GAG_C"}
				]}`)
				return
			}
			w.Header().Set("Link",
				fmt.Sprintf(`<%s/?page=2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `{"results":[
				{"primaryAccession":"P1","uniProtkbId":"GAG_A"},
				{"primaryAccession":"P2","uniProtkbId":"GAG_B"}
			]}`)
		}))
	defer srv.Close()

	dir := t.TempDir()
	src := iofetch.New(testConfig(srv.URL), nil)

	count, err := src.Download(context.Background(), testDataset(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, name := range []string{"P1.json", "P2.json", "P3.json"} {
		_, err = os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "P1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "GAG_A")
}

func TestDownloadRetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, `{"results":[{"primaryAccession":"P1"}]}`)
		}))
	defer srv.Close()

	src := iofetch.New(testConfig(srv.URL), nil)

	count, err := src.Download(
		context.Background(), testDataset(), t.TempDir(),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDownloadGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer srv.Close()

	src := iofetch.New(testConfig(srv.URL), nil)

	_, err := src.Download(
		context.Background(), testDataset(), t.TempDir(),
	)
	assert.Error(t, err)
}

func TestDownloadFailsOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadRequest)
		}))
	defer srv.Close()

	src := iofetch.New(testConfig(srv.URL), nil)

	_, err := src.Download(
		context.Background(), testDataset(), t.TempDir(),
	)
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls),
		"client errors are not retried")
}

func TestDownloadRecordWithoutAccession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results":[{"uniProtkbId":"GAG_A"}]}`)
		}))
	defer srv.Close()

	dir := t.TempDir()
	src := iofetch.New(testConfig(srv.URL), nil)

	count, err := src.Download(context.Background(), testDataset(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = os.Stat(filepath.Join(dir, "entry_1.json"))
	assert.NoError(t, err)
}

func TestDownloadServesCachedRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"results":[
				{"primaryAccession":"P1","uniProtkbId":"GAG_NEW"},
				{"primaryAccession":"P2","uniProtkbId":"GAG_B"}
			]}`)
		}))
	defer srv.Close()

	cache, err := iofetch.NewCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	cached := []byte(`{"primaryAccession":"P1","uniProtkbId":"GAG_OLD"}`)
	err = cache.Store("P1.json", cached)
	require.NoError(t, err)

	dir := t.TempDir()
	src := iofetch.New(testConfig(srv.URL), cache)

	count, err := src.Download(context.Background(), testDataset(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The cached copy wins over the fetched one.
	data, err := os.ReadFile(filepath.Join(dir, "P1.json"))
	require.NoError(t, err)
	assert.Equal(t, cached, data)

	// Records seen for the first time are cached.
	data, err = cache.Get("P2.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "GAG_B")
}

func TestCacheStoreGet(t *testing.T) {
	cache, err := iofetch.NewCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	err = cache.Store("P1.json", []byte(`{"primaryAccession":"P1"}`))
	require.NoError(t, err)

	data, err := cache.Get("P1.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "P1")

	missing, err := cache.Get("absent.json")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
