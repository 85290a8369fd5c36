package provider

import (
	"context"
	"io"
	"net/http"

	"github.com/ytgrab/ytgrab/internal/reply"
)

// FetchThumbnail performs one GET and buffers the whole response body in
// memory. Non-2xx statuses are mapped onto the error taxonomy; decoding the
// bytes into an image is the caller's concern.
func FetchThumbnail(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, reply.Wrap(reply.ValidationError, err, "bad thumbnail url %q", url)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, reply.Wrap(reply.NetworkError, err, "thumbnail fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, reply.New(reply.FromStatus(resp.StatusCode), "thumbnail fetch returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, reply.Wrap(reply.NetworkError, err, "thumbnail body read failed")
	}
	return data, nil
}
