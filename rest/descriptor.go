package rest

import "net/http"

// Descriptor describes one API request: where it goes, what it carries, and
// whether a 401 response may trigger the single silent refresh-and-retry.
type Descriptor struct {
	Method string
	Path   string
	Body   any

	// Retry marks the request as eligible for one replay after a silent
	// token refresh. Token-exchange requests themselves must never be
	// retry-eligible or a server that always rejects them would loop.
	Retry bool
}

// Get builds a retry-eligible GET descriptor
func Get(path string) Descriptor {
	return Descriptor{Method: http.MethodGet, Path: path, Retry: true}
}

// Post builds a retry-eligible POST descriptor
func Post(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPost, Path: path, Body: body, Retry: true}
}

// Patch builds a retry-eligible PATCH descriptor
func Patch(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPatch, Path: path, Body: body, Retry: true}
}

// Delete builds a retry-eligible DELETE descriptor
func Delete(path string) Descriptor {
	return Descriptor{Method: http.MethodDelete, Path: path, Retry: true}
}

// WithoutRetry returns a copy of the descriptor that opts out of the
// refresh-and-retry policy
func (d Descriptor) WithoutRetry() Descriptor {
	d.Retry = false
	return d
}
