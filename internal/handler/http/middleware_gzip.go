package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/app"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip request bodies and compresses the response when
// the client accepts gzip. Readers and writers are pooled.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			zr := gzipReaders.Get().(*gzip.Reader)
			if err := zr.Reset(r.Body); err != nil {
				gzipReaders.Put(zr)
				http.Error(w, app.MsgInvalidGzip, http.StatusBadRequest)
				return
			}
			r.Body = &pooledGzipBody{Reader: zr, orig: r.Body}
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		gw := &gzipResponseWriter{ResponseWriter: w, zw: zw}
		defer func() {
			// a response without headers must not get a bare gzip trailer
			if gw.started {
				zw.Close()
			}
			gzipWriters.Put(zw)
		}()

		next.ServeHTTP(gw, r)
	})
}

// pooledGzipBody returns its reader to the pool on Close.
type pooledGzipBody struct {
	*gzip.Reader
	orig   io.ReadCloser
	closed bool
}

func (b *pooledGzipBody) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.Reader.Close()
	gzipReaders.Put(b.Reader)
	return b.orig.Close()
}

type gzipResponseWriter struct {
	http.ResponseWriter
	zw      *gzip.Writer
	started bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.started {
		return
	}
	w.started = true
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	return w.zw.Write(data)
}
