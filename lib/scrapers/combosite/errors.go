package combosite

import (
	"fmt"
)

// FetchError is returned when a page cannot be retrieved: transport
// failures, timeouts and non-2xx responses. Status is 0 when no response
// was received.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DownloadError is reported when an icon could not be fetched or
// written. It is never returned out of the scrape.
type DownloadError struct {
	URL  string
	Path string
	Err  error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s to %s: %v", e.URL, e.Path, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
