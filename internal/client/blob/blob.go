// Package blob represents binary attachments (images, PDFs) as lazy
// references: either an in-memory byte buffer or a remote-resolvable
// locator, never both materialized unless asked. References are immutable
// once constructed.
package blob

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// httpClient is a test seam for locator resolution and uploads.
var httpClient = http.DefaultClient

// Kind says which representation a Reference was constructed with. The
// resolver honors the chosen representation: a reference never silently
// downgrades a locator to bytes or vice versa.
type Kind int

const (
	// KindBytes holds the payload in memory (a locally selected file).
	KindBytes Kind = iota
	// KindLocator points at an already-persisted remote object.
	KindLocator
)

// Reference is a lazy handle to a binary asset.
type Reference struct {
	kind       Kind
	data       []byte
	locator    string
	onProgress func(percent int)
}

// FromBytes builds a byte-backed reference. The payload is copied so later
// mutation of b does not leak into the reference.
func FromBytes(b []byte) *Reference {
	return &Reference{kind: KindBytes, data: append([]byte(nil), b...)}
}

// FromLocator builds a locator-backed reference around an existing remote
// URL, carried through unchanged.
func FromLocator(url string) *Reference {
	return &Reference{kind: KindLocator, locator: url}
}

func (r *Reference) Kind() Kind {
	return r.kind
}

// WithProgress returns a copy of the reference whose transfers report a
// 0–100 percentage to fn. The original reference is unmodified, so callers
// can compose the hook right before an upload.
func (r *Reference) WithProgress(fn func(percent int)) *Reference {
	clone := *r
	clone.onProgress = fn
	return &clone
}

// Bytes resolves the payload. A byte-backed reference answers from memory
// without any remote call; a locator-backed reference downloads the object,
// reporting progress if a hook is attached.
func (r *Reference) Bytes(ctx context.Context) ([]byte, error) {
	if r.kind == KindBytes {
		return append([]byte(nil), r.data...), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.locator, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob download: unexpected status %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if r.onProgress != nil && resp.ContentLength > 0 {
		reader = newProgressReader(resp.Body, resp.ContentLength, r.onProgress)
	}

	return io.ReadAll(reader)
}

// Locator resolves a display locator. A locator-backed reference returns
// its URL unchanged; a byte-backed reference is encoded as a data URI so it
// can be displayed without a round trip through the remote actor.
func (r *Reference) Locator() string {
	if r.kind == KindLocator {
		return r.locator
	}
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(r.data)
}

// Upload streams a byte-backed payload to a presigned PUT URL, reporting
// progress if a hook is attached. Locator-backed references have nothing to
// upload; calling Upload on one is an error.
func (r *Reference) Upload(ctx context.Context, url string) error {
	if r.kind != KindBytes {
		return fmt.Errorf("blob upload: reference is not byte-backed")
	}

	var body io.Reader = bytes.NewReader(r.data)
	if r.onProgress != nil {
		body = newProgressReader(body, int64(len(r.data)), r.onProgress)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(r.data))

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("blob upload: unexpected status %d", resp.StatusCode)
	}
	return nil
}

type progressReader struct {
	inner io.Reader
	total int64
	read  int64
	fn    func(percent int)
	last  int
}

func newProgressReader(inner io.Reader, total int64, fn func(percent int)) *progressReader {
	return &progressReader{inner: inner, total: total, fn: fn, last: -1}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.inner.Read(b)
	p.read += int64(n)

	percent := 100
	if p.total > 0 {
		percent = int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
	}
	if percent != p.last {
		p.last = percent
		p.fn(percent)
	}

	return n, err
}
