package roster

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ConverterClient talks to the external roster conversion service, which
// accepts an uploaded roster file and answers with a calendar-event feed.
type ConverterClient struct {
	baseURL string
	client  *http.Client
}

func NewConverterClient(baseURL string) *ConverterClient {
	return &ConverterClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Convert uploads the roster file and returns the parsed events. Timeouts
// are the caller's business via ctx; a failing converter is reported as an
// ordinary error, never retried here.
func (c *ConverterClient) Convert(ctx context.Context, filename string, file io.Reader) ([]RawEvent, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("roster", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster converter returned status %d", resp.StatusCode)
	}

	feed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ParseFeed(string(feed))
}
