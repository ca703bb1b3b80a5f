package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// doJSON sends a JSON request to the portal server and returns the
// response body, surfacing the server's error envelope on failure.
func doJSON(method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	url := strings.TrimRight(serverURL, "/") + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rsp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode >= 400 {
		if msg := gjson.GetBytes(data, "error"); msg.Exists() {
			return nil, fmt.Errorf("server error (%d): %s", rsp.StatusCode, msg.String())
		}
		return nil, fmt.Errorf("server error (%d)", rsp.StatusCode)
	}
	return data, nil
}
