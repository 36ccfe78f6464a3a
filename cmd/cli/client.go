package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// apiClient talks to the yt-extract HTTP server
type apiClient struct {
	baseURL string
	http    *http.Client
}

// apiError is an error response from the server
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func newAPIClient(baseURL string) *apiClient {
	// Downloads are synchronous and may take minutes
	return &apiClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 0},
	}
}

// downloadResponse mirrors the body of POST /download/:resolution
type downloadResponse struct {
	Message   string  `json:"message"`
	Subtitles *string `json:"subtitles,omitempty"`
}

func (c *apiClient) download(videoURL, resolution string, subtitles bool) (*downloadResponse, error) {
	payload := map[string]interface{}{"url": videoURL}
	if subtitles {
		payload["subtitles"] = true
	}

	var result downloadResponse
	if err := c.post("/download/"+url.PathEscape(resolution), payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *apiClient) videoInfo(videoURL string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := c.post("/video_info", map[string]string{"url": videoURL}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) listDownloads(status string) ([]map[string]interface{}, error) {
	path := "/api/v1/downloads"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var result []map[string]interface{}
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) getDownload(id string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := c.get("/api/v1/downloads/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) stats() (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := c.get("/api/v1/downloads/stats", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// logEntries mirrors the body of GET /api/v1/logs/:category
type logEntries struct {
	Category string                   `json:"category"`
	Date     string                   `json:"date"`
	Count    int                      `json:"count"`
	Entries  []map[string]interface{} `json:"entries"`
}

func (c *apiClient) logs(category, date, query string, limit int) (*logEntries, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}

	path := "/api/v1/logs/" + url.PathEscape(category)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var result logEntries
	if err := c.get(path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// healthy reports whether the server answers its health check
func (c *apiClient) healthy() bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *apiClient) post(path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *apiClient) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		message := string(body)
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		}
		return &apiError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
