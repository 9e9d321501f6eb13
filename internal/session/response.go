package session

import (
	"net/http"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Latency    time.Duration
}

func (r *Response) Text() string {
	return string(r.Body)
}
