package client

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ConnectionError means the transport could not reach the inference server at
// all (DNS failure, refused connection, timeout).
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error with server connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// RemoteCallError means the server answered with a non-2xx status. Message is
// the server's JSON "message" field when the response is JSON, otherwise the
// raw response text.
type RemoteCallError struct {
	StatusCode int
	Message    string
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote call failed with status %d: %s", e.StatusCode, e.Message)
}

// InvalidModelIDError means an inference call could not resolve a usable
// model identifier. It is raised before any network I/O.
type InvalidModelIDError struct {
	ModelID string
	Reason  string
}

func (e *InvalidModelIDError) Error() string {
	if e.ModelID == "" {
		return fmt.Sprintf("invalid model identifier: %s", e.Reason)
	}
	return fmt.Sprintf("invalid model identifier %q: %s", e.ModelID, e.Reason)
}

// do is the single translation boundary every outbound call funnels through.
// Transport failures become *ConnectionError, non-2xx statuses become
// *RemoteCallError; a 2xx response yields the body and headers untouched.
func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &ConnectionError{Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, remoteCallError(resp.StatusCode, resp.Header, body)
	}
	return body, resp.Header, nil
}

// remoteCallError maps a failed response to the error surfaced to callers.
// It is a pure function of status, headers and body.
func remoteCallError(status int, header http.Header, body []byte) *RemoteCallError {
	message := string(body)
	if strings.Contains(header.Get("Content-Type"), "application/json") {
		if m := gjson.GetBytes(body, "message"); m.Exists() {
			message = m.String()
		}
	}
	return &RemoteCallError{StatusCode: status, Message: message}
}
