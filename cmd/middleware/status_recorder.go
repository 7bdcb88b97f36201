package middleware

import "net/http"

// statusRecorder captures the status code and body size while passing writes through
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w}
}

// WriteHeader implements http.ResponseWriter
func (rr *statusRecorder) WriteHeader(code int) {
	if rr.statusCode == 0 {
		rr.statusCode = code
	}
	rr.ResponseWriter.WriteHeader(code)
}

// Write implements http.ResponseWriter
func (rr *statusRecorder) Write(data []byte) (int, error) {
	if rr.statusCode == 0 {
		rr.statusCode = http.StatusOK
	}
	n, err := rr.ResponseWriter.Write(data)
	rr.bytesWritten += n
	return n, err
}

// Status returns the recorded status, 200 if the handler never wrote one
func (rr *statusRecorder) Status() int {
	if rr.statusCode == 0 {
		return http.StatusOK
	}
	return rr.statusCode
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rr *statusRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}
