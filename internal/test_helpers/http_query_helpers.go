package helpers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/cookiejar"
	"testing"
)

// NewClient returns a client with its own cookie jar, so consecutive
// calls behave like one browser session.
func NewClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func do(client *http.Client, req *http.Request, t *testing.T) (int, http.Header, []byte) {
	resp, err := client.Do(req)
	if err != nil {
		t.Error(err)
		return 0, nil, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Error(err)
		return 0, nil, nil
	}

	return resp.StatusCode, resp.Header, body
}

func DoGet(client *http.Client, url string, headers map[string]string, t *testing.T) (int, http.Header, []byte) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Error(err)
		return 0, nil, nil
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(client, req, t)
}

func DoPost(client *http.Client, url string, content []byte, t *testing.T) (int, http.Header, []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(content))
	if err != nil {
		t.Error(err)
		return 0, nil, nil
	}
	req.Header.Set("Content-Type", "application/json")

	return do(client, req, t)
}
