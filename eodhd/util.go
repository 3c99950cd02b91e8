package eodhd

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/tjpapenfuss/foliosim/date"
)

// cachingTransport stores whole HTTP responses on disk so that repeated
// fetches of the same endpoint hit the network once per day. End-of-day data
// does not change within a day, and the provider meters API calls.
type cachingTransport struct {
	next http.RoundTripper
}

// cacheKey derives the on-disk file name for a request. Today's date is part
// of the key, so every entry expires at midnight without any cleanup logic.
func cacheKey(req *http.Request) string {
	plain := date.Today().String() + " " + req.Method + " " + req.URL.String()
	return fmt.Sprintf("eodhd-%x", sha1.Sum([]byte(plain)))
}

func (c *cachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	file := filepath.Join(os.TempDir(), cacheKey(req))

	if content, err := os.ReadFile(file); err == nil {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
			return resp, nil
		}
	}

	resp, err := c.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		// do not cache errors, a retry should hit the network again.
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return resp, nil
	}
	if err := os.WriteFile(file, content, 0o600); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// newDailyCachingClient returns an http.Client whose responses are cached on
// disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: &cachingTransport{next: http.DefaultTransport}}
}

// jwget GETs 'addr' and decodes the JSON response body into 'data'.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
