package opendata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

var data_cache = new(sync.Map)

func fetchURL(ctx context.Context, api_url string) ([]byte, error) {

	v, exists := data_cache.Load(api_url)

	if exists {
		return v.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", api_url, nil)

	if err != nil {
		return nil, err
	}

	rsp, err := http.DefaultClient.Do(req)

	if err != nil {
		return nil, err
	}

	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unexpected status '%s'", rsp.Status)
	}

	body, err := io.ReadAll(rsp.Body)

	if err != nil {
		return nil, err
	}

	data_cache.Store(api_url, body)

	return body, nil
}
