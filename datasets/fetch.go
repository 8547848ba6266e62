package datasets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// DiabetesURL is where the study file of Efron et al. (2004) is published.
const DiabetesURL = "https://www4.stat.ncsu.edu/~boos/var.select/diabetes.tab.txt"

// DefaultFetchTimeout bounds a whole download.
const DefaultFetchTimeout = 30 * time.Second

// maxFetchBytes caps the response body; the study file is about 20 KB.
const maxFetchBytes = 1 << 20

// Fetcher downloads the diabetes study file.
type Fetcher struct {
	URL        string
	httpClient *http.Client
}

// NewFetcher returns a Fetcher for url, or DiabetesURL when url is empty.
func NewFetcher(url string) *Fetcher {
	if url == "" {
		url = DiabetesURL
	}
	return &Fetcher{
		URL: url,
		httpClient: &http.Client{
			Timeout: DefaultFetchTimeout,
		},
	}
}

// WithTimeout sets a custom timeout for the download.
func (f *Fetcher) WithTimeout(timeout time.Duration) *Fetcher {
	f.httpClient.Timeout = timeout
	return f
}

// Fetch downloads the file, checks that it parses as diabetes data and
// writes it to dest. dest is only replaced once the download is valid.
func (f *Fetcher) Fetch(ctx context.Context, dest string) (*Bunch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", f.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("download %s: unexpected status %s", f.URL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", f.URL)
	}
	if len(body) > maxFetchBytes {
		return nil, errors.NewValueError("Fetch", fmt.Sprintf("response larger than %d bytes", maxFetchBytes))
	}

	b, err := ReadDiabetes(bytes.NewReader(body), WithScaled(false))
	if err != nil {
		return nil, errors.Wrapf(err, "downloaded file from %s is not diabetes data", f.URL)
	}

	if err := writeFileAtomic(dest, body); err != nil {
		return nil, err
	}
	b.Source = dest

	log.GetLoggerWithName("datasets").Info("diabetes data downloaded",
		log.SourceKey, f.URL,
		log.OutputPathKey, dest,
		log.SamplesKey, b.Target.Len(),
	)
	return b, nil
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".diabetes-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return errors.Wrapf(err, "failed to move data into %s", dest)
	}
	return nil
}
