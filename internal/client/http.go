package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// StatusError is returned when a remote service answers with a 4xx or 5xx.
type StatusError struct {
	Code int
	Body string
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.URL, e.Code, e.Body)
}

// UpstreamStatus returns the remote status code.
func (e *StatusError) UpstreamStatus() int { return e.Code }

type baseClient struct {
	session *http.Client
	baseURL string
}

func newBaseClient(baseURL string, session *http.Client) baseClient {
	if session == nil {
		session = http.DefaultClient
	}
	return baseClient{
		session: session,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// getJSON issues a GET for path with query and decodes the body into out.
func (c baseClient) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
			URL:  c.baseURL + path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// flexString accepts a JSON string or number; remote fields use both.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	*s = flexString(raw)
	return nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
