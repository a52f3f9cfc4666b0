package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"

	"github.com/viant/afs/url"
	"github.com/viant/authstate/session"
)

const (
	apiKeyHeader  = "apikey"
	clientHeader  = "X-Client-Info"
	clientInfo    = "authstate-go"
	maxErrorBytes = 64 * 1024
)

// errorBody covers the error shapes returned by GoTrue versions
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (b *errorBody) toError(status int) *session.Error {
	ret := &session.Error{Status: status, Code: b.ErrorCode}
	if ret.Code == "" {
		if code, ok := b.Code.(string); ok {
			ret.Code = code
		}
	}
	if ret.Code == "" && b.Error != "" && b.ErrorDescription != "" {
		ret.Code = b.Error
	}
	for _, candidate := range []string{b.Msg, b.ErrorDescription, b.Message, b.Error} {
		if candidate != "" {
			ret.Message = candidate
			break
		}
	}
	if ret.Message == "" {
		ret.Message = http.StatusText(status)
	}
	return ret
}

func (c *Client) endpoint(elements ...string) string {
	return url.Join(c.baseURL, elements...)
}

func (c *Client) post(ctx context.Context, URL string, accessToken string, payload any, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, URL, accessToken, body, result)
}

func (c *Client) do(ctx context.Context, method, URL string, accessToken string, body io.Reader, result any) error {
	request, err := http.NewRequestWithContext(ctx, method, URL, body)
	if err != nil {
		return err
	}
	request.Header.Set(apiKeyHeader, c.apiKey)
	request.Header.Set(clientHeader, clientInfo)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	bearer := accessToken
	if bearer == "" {
		bearer = c.apiKey
	}
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("network request failed: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBytes))
		errBody := &errorBody{}
		_ = json.Unmarshal(data, errBody)
		return errBody.toError(response.StatusCode)
	}
	if result == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	if err = json.NewDecoder(response.Body).Decode(result); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode %v response: %w", URL, err)
	}
	return nil
}

func queryEscape(value string) string {
	return neturl.QueryEscape(value)
}
