package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const maxErrorDetail = 512

// remoteCall is one authorized JSON request against a remote storage API.
type remoteCall struct {
	backend string
	op      string
	method  string
	url     string
	token   string
	body    any
	header  http.Header
}

func doRemote(ctx context.Context, client *http.Client, call remoteCall) (*http.Response, error) {
	var payload io.Reader
	if call.body != nil {
		encoded, err := json.Marshal(call.body)
		if err != nil {
			return nil, &UploadError{Backend: call.backend, Op: call.op, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, call.url, payload)
	if err != nil {
		return nil, &UploadError{Backend: call.backend, Op: call.op, Err: err}
	}
	if call.token != "" {
		req.Header.Set("Authorization", "Bearer "+call.token)
	}
	if call.body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	for key, values := range call.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &UploadError{Backend: call.backend, Op: call.op, Err: err}
	}
	return resp, nil
}

// putContent sends the whole payload to a resumable session in one request.
func putContent(ctx context.Context, client *http.Client, backend, uploadURL, token, contentType string, content []byte, out any) error {
	size := len(content)
	header := http.Header{}
	header.Set("Content-Type", contentType)
	if size > 0 {
		header.Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", size-1, size))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(content))
	if err != nil {
		return &UploadError{Backend: backend, Op: "put_content", Err: err}
	}
	req.Header = header
	req.ContentLength = int64(size)
	req.Header.Set("Content-Length", strconv.Itoa(size))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &UploadError{Backend: backend, Op: "put_content", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(backend, "put_content", resp)
	}
	return decodeBody(backend, "put_content", resp, out)
}

// tokenError keeps the token endpoint's status and body when the exchange
// was rejected rather than unreachable.
func tokenError(backend string, err error) *UploadError {
	uploadErr := &UploadError{Backend: backend, Op: "token", Err: err}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		uploadErr.Status = retrieveErr.Response.StatusCode
		detail := retrieveErr.Body
		if len(detail) > maxErrorDetail {
			detail = detail[:maxErrorDetail]
		}
		uploadErr.Detail = strings.TrimSpace(string(detail))
	}
	return uploadErr
}

// emptyContentError rejects payloads a resumable session cannot describe
// with a Content-Range.
func emptyContentError(backend string) *UploadError {
	return &UploadError{Backend: backend, Op: "upload", Detail: "empty content"}
}

func statusError(backend, op string, resp *http.Response) *UploadError {
	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
	return &UploadError{
		Backend: backend,
		Op:      op,
		Status:  resp.StatusCode,
		Detail:  strings.TrimSpace(string(detail)),
	}
}

func decodeBody(backend, op string, resp *http.Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UploadError{Backend: backend, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
