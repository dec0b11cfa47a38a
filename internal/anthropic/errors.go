package anthropic

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/HerbHall/llmbridge/pkg/llm"
)

// ParseStatusError reads a non-2xx response body and surfaces it as a
// typed transport error carrying the vendor's error type and message.
func ParseStatusError(resp *http.Response) error {
	var errResp struct {
		Type  string `json:"type"`
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || json.Unmarshal(data, &errResp) != nil || errResp.Error.Message == "" {
		return llm.NewTransportError(ProviderName,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, resp.Status), nil)
	}

	return llm.NewTransportError(ProviderName,
		fmt.Sprintf("status %d (%s): %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message), nil)
}
