package middleware

import "net/http"

const noCacheValue = "no-cache, no-store, must-revalidate"

// NoCache sets Cache-Control on every response whose handler did not set one.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&noCacheWriter{ResponseWriter: w}, r)
	})
}

type noCacheWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *noCacheWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.Header().Get("Cache-Control") == "" {
			w.Header().Set("Cache-Control", noCacheValue)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *noCacheWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *noCacheWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
