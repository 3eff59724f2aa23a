package upstream

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func decompressIfNeeded(h http.Header, body io.ReadCloser) (io.ReadCloser, func(), error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("Content-Encoding")))
	switch enc {
	case "", "identity":
		return body, func() {}, nil
	case "gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, func() {}, err
		}
		return zr, func() { _ = zr.Close(); _ = body.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, enc)
	}
}
