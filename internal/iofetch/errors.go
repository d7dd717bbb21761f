package iofetch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/retroevo/capsid/pkg/errcode"
)

// RequestError creates an error for when a request to the UniProt API
// cannot be completed after retries.
func RequestError(url string, err error) error {
	msg := `Cannot reach the UniProt API

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - UniProt service is down
  - Request timed out

<em>How to fix:</em>
  1. Check your network connection
  2. Check UniProt status: <em>https://www.uniprot.org</em>
  3. Increase retries or timeout in the configuration`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.FetchRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("request to %s failed: %w", url, err),
	}
}

// StatusError creates an error for a non-retryable HTTP status from
// the UniProt API.
func StatusError(url string, status int, body []byte) error {
	msg := `UniProt API returned an error

<em>URL:</em> %s
<em>Status:</em> %d

<em>How to fix:</em>
  1. Check the dataset query syntax in datasets.yaml
  2. Consult the UniProt API documentation`

	vars := []any{url, status}

	return &gn.Error{
		Code: errcode.FetchStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("unexpected status %d from %s: %s",
			status, url, truncate(body, 200)),
	}
}

// DecodeError creates an error for a response body that is not
// valid JSON.
func DecodeError(url string, err error) error {
	msg := "Cannot decode the response from <em>%s</em>"
	vars := []any{url}
	return &gn.Error{
		Code: errcode.FetchDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode response from %s: %w", url, err),
	}
}

// SaveError creates an error for when a downloaded record cannot be
// written to disk.
func SaveError(path string, err error) error {
	msg := `Cannot save a downloaded record

<em>Path:</em> %s

<em>How to fix:</em>
  1. Check free disk space
  2. Check permissions of the output directory`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.FetchSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save record to %s: %w", path, err),
	}
}

// CacheError creates an error for a failure of the record cache.
func CacheError(dir string, err error) error {
	msg := `Record cache failure

<em>Cache directory:</em> %s

<em>How to fix:</em>
  1. Remove the cache directory and retry: <em>rm -rf %s</em>`

	vars := []any{dir, dir}

	return &gn.Error{
		Code: errcode.FetchCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("record cache at %s: %w", dir, err),
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
