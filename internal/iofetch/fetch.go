// Package iofetch downloads protein records from the UniProt REST API.
//
// The API paginates with Link headers; every page is fetched with an
// explicitly configured retry policy (count, doubling backoff,
// retryable status set) instead of a shared preconfigured session.
// Each record is saved as an individual JSON document named by its
// primary accession, and mirrored into the record cache for reuse.
package iofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnsys"
	"github.com/retroevo/capsid/pkg/config"
	"github.com/retroevo/capsid/pkg/datasets"
	"github.com/retroevo/capsid/pkg/pipeline"
)

var reNextLink = regexp.MustCompile(`<(.+)>; rel="next"`)

type fetcher struct {
	cfg    *config.Config
	client *http.Client
	cache  *Cache
}

// New creates a RecordSource backed by the UniProt REST API. The cache
// may be nil, in which case downloaded records are only written to
// disk.
func New(cfg *config.Config, cache *Cache) pipeline.RecordSource {
	return &fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.UniProt.TimeoutSec) * time.Second,
		},
		cache: cache,
	}
}

// page is one response of the paginated search endpoint.
type page struct {
	Results []json.RawMessage `json:"results"`
}

// accessionOnly decodes just enough of a record to name its file.
type accessionOnly struct {
	PrimaryAccession string `json:"primaryAccession"`
}

func (f *fetcher) Download(
	ctx context.Context,
	ds datasets.Dataset,
	dir string,
) (int, error) {
	if err := gnsys.MakeDir(dir); err != nil {
		return 0, SaveError(dir, err)
	}

	batchSize := f.cfg.UniProt.BatchSize
	if ds.BatchSize > 0 {
		batchSize = ds.BatchSize
	}

	pageURL := f.firstPageURL(ds.Query, batchSize)
	slog.Info("Starting download",
		"dataset", ds.Name,
		"query", ds.Query,
		"batch_size", batchSize,
	)

	var bar *pb.ProgressBar
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	var saved int
	for pageURL != "" {
		body, headers, err := f.getPage(ctx, pageURL)
		if err != nil {
			return saved, err
		}

		if bar == nil {
			if total, ok := totalResults(headers); ok {
				bar = pb.Full.Start(total)
				bar.Set("prefix", "Downloading records: ")
				bar.Set(pb.CleanOnFinish, true)
			}
		}

		var pg page
		if err = json.Unmarshal(body, &pg); err != nil {
			return saved, DecodeError(pageURL, err)
		}

		for _, raw := range pg.Results {
			name := recordFileName(raw, saved)
			outPath := filepath.Join(dir, name)
			data := f.cachedOrStore(name, raw)
			if err = os.WriteFile(outPath, data, 0644); err != nil {
				return saved, SaveError(outPath, err)
			}
			saved++
			if bar != nil {
				bar.Increment()
			}
		}

		pageURL = nextLink(headers)
	}

	slog.Info("Download complete", "dataset", ds.Name, "records", saved)
	return saved, nil
}

// cachedOrStore returns the cached copy of a record when one exists,
// so records stay stable between runs. Otherwise it caches the fetched
// bytes and returns them. Cache failures do not interrupt the download.
func (f *fetcher) cachedOrStore(name string, raw []byte) []byte {
	if f.cache == nil {
		return raw
	}
	cached, err := f.cache.Get(name)
	if err != nil {
		slog.Warn("Cannot read cached record",
			"file", name, "error", err)
		return raw
	}
	if cached != nil {
		return cached
	}
	if err = f.cache.Store(name, raw); err != nil {
		slog.Warn("Cannot cache record",
			"file", name, "error", err)
	}
	return raw
}

func (f *fetcher) firstPageURL(query string, batchSize int) string {
	vals := url.Values{}
	vals.Set("query", query)
	vals.Set("format", "json")
	vals.Set("size", strconv.Itoa(batchSize))
	return f.cfg.UniProt.BaseURL + "?" + vals.Encode()
}

// getPage fetches one page, retrying transport errors and the
// configured status codes with doubling backoff.
func (f *fetcher) getPage(
	ctx context.Context,
	pageURL string,
) ([]byte, http.Header, error) {
	var lastErr error
	backoff := f.cfg.UniProt.RetryBackoff

	for attempt := 0; attempt <= f.cfg.UniProt.RetryCount; attempt++ {
		if attempt > 0 {
			wait := time.Duration(backoff * float64(time.Second))
			backoff *= 2
			select {
			case <-ctx.Done():
				return nil, nil, RequestError(pageURL, ctx.Err())
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, nil, RequestError(pageURL, err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("Page request failed",
				"url", pageURL, "attempt", attempt+1, "error", err)
			continue
		}

		if f.retryable(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			slog.Warn("Retryable response status",
				"url", pageURL, "status", resp.StatusCode,
				"attempt", attempt+1)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, nil, StatusError(pageURL, resp.StatusCode, body)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return body, resp.Header, nil
	}

	return nil, nil, RequestError(pageURL, lastErr)
}

func (f *fetcher) retryable(status int) bool {
	for _, s := range f.cfg.UniProt.RetryStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// nextLink extracts the URL of the next page from the Link header, or
// an empty string on the last page.
func nextLink(headers http.Header) string {
	link := headers.Get("Link")
	if link == "" {
		return ""
	}
	match := reNextLink.FindStringSubmatch(link)
	if match == nil {
		return ""
	}
	return match[1]
}

func totalResults(headers http.Header) (int, bool) {
	s := headers.Get("X-Total-Results")
	if s == "" {
		return 0, false
	}
	total, err := strconv.Atoi(s)
	if err != nil || total <= 0 {
		return 0, false
	}
	return total, true
}

// recordFileName names a record file by primary accession, falling back
// to a positional name when the accession is missing.
func recordFileName(raw json.RawMessage, idx int) string {
	var acc accessionOnly
	if err := json.Unmarshal(raw, &acc); err == nil &&
		acc.PrimaryAccession != "" {
		return acc.PrimaryAccession + ".json"
	}
	return fmt.Sprintf("entry_%d.json", idx+1)
}
