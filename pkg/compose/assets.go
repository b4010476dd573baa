package compose

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/imagemix/pkg/cache"
	"github.com/matzehuels/imagemix/pkg/errors"
	"github.com/matzehuels/imagemix/pkg/httputil"
)

// Source provides raw image bytes for image-layer filenames.
// Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context, filename string) ([]byte, error)
}

// DirSource serves assets from a local directory. Filenames from the
// template are resolved relative to the directory root.
type DirSource struct {
	dir string
}

// NewDirSource creates a directory-backed asset source.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Fetch reads the asset file. A missing file is an ASSET_NOT_FOUND error.
func (s *DirSource) Fetch(ctx context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetNotFound, err, "asset %s", filename)
	}
	return data, nil
}

// HTTPSource fetches assets over HTTP(S) relative to a base URL. Transient
// failures (network errors, 5xx) are retried with exponential backoff, and
// fetched bytes can be stored in an optional byte cache so repeated runs
// against the same remote folder skip the download.
type HTTPSource struct {
	base       string
	client     *http.Client
	cache      cache.Cache
	ttl        time.Duration
	retryDelay time.Duration
}

// NewHTTPSource creates an HTTP asset source. A nil byte cache disables
// on-disk caching of downloads.
func NewHTTPSource(base string, c cache.Cache) *HTTPSource {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &HTTPSource{
		base:       base,
		client:     &http.Client{Timeout: 30 * time.Second},
		cache:      c,
		ttl:        24 * time.Hour,
		retryDelay: time.Second,
	}
}

// Fetch downloads the asset, consulting the byte cache first.
func (s *HTTPSource) Fetch(ctx context.Context, filename string) ([]byte, error) {
	assetURL, err := url.JoinPath(s.base, filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetNotFound, err, "asset url for %s", filename)
	}

	if data, hit, err := s.cache.Get(ctx, assetURL); err == nil && hit {
		return data, nil
	}

	var data []byte
	err = httputil.Retry(ctx, 3, s.retryDelay, func() error {
		var ferr error
		data, ferr = s.fetchOnce(ctx, assetURL)
		return ferr
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeAssetNotFound, err, "fetch %s", filename)
	}

	_ = s.cache.Set(ctx, assetURL, data, s.ttl)
	return data, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeAssetNotFound, "asset %s: %s", assetURL, resp.Status)
	case resp.StatusCode >= 500:
		return nil, &httputil.RetryableError{Err: fmt.Errorf("fetch %s: %s", assetURL, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: %s", assetURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Images decodes assets fetched from a Source, caching decoded results for
// the duration of the run. Concurrent requests for the same filename are
// collapsed so each distinct file is fetched and decoded at most once.
type Images struct {
	source Source
	group  singleflight.Group
	cache  *gocache.Cache
}

// NewImages wraps a source with a decode cache.
func NewImages(source Source) *Images {
	return &Images{
		source: source,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Load returns the decoded image for filename. Fetch failures surface as
// ASSET_NOT_FOUND, unreadable image data as DECODE_ERROR. Failures are not
// cached, so a transient source error does not poison later entries.
func (c *Images) Load(ctx context.Context, filename string) (image.Image, error) {
	if v, ok := c.cache.Get(filename); ok {
		return v.(image.Image), nil
	}

	v, err, _ := c.group.Do(filename, func() (any, error) {
		// The in-flight fetch is shared by every waiter of this key, so it
		// must not die with the caller that happened to initiate it.
		data, err := c.source.Fetch(context.WithoutCancel(ctx), filename)
		if err != nil {
			return nil, err
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", filename)
		}
		c.cache.Set(filename, img, gocache.NoExpiration)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}
