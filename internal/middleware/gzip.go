package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// compressibleTypes — ответы, которые имеет смысл сжимать. PNG и фото уже сжаты.
var compressibleTypes = []string{"application/json", "text/plain", "text/html"}

// compress сжимает ответ по Accept-Encoding. Ответы, у которых обработчик
// уже выставил Content-Encoding (например, /metrics), проходят как есть.
var compress = chimw.Compress(gzip.DefaultCompression, compressibleTypes...)

type gzipReader struct {
	io.ReadCloser
	zr *gzip.Reader
}

func (g *gzipReader) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReader) Close() error {
	_ = g.zr.Close()
	return g.ReadCloser.Close()
}

// WithGzip распаковывает тело запроса с Content-Encoding: gzip и сжимает ответ,
// если клиент принимает gzip.
func WithGzip(next http.Handler) http.Handler {
	compressed := compress(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, "invalid gzip body", http.StatusBadRequest)
				return
			}
			r.Body = &gzipReader{ReadCloser: r.Body, zr: zr}
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
			r.ContentLength = -1
		}
		compressed.ServeHTTP(w, r)
	})
}
