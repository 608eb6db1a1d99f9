package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"visor/internal/media"
)

// inferLegacy speaks the legacy single-path-segment-pair protocol: one POST
// per encoded input to /<dataset>/<version>, credential and call parameters
// as query parameters, the encoded payload as the request body.
func (c *Client) inferLegacy(ctx context.Context, inputs []media.Input, opts *InferOptions) (Prediction, error) {
	modelID, err := c.resolveModelID(opts)
	if err != nil {
		return Prediction{}, err
	}
	dataset, version, err := splitModelID(modelID)
	if err != nil {
		return Prediction{}, err
	}

	encoded, err := media.EncodeAll(inputs)
	if err != nil {
		return Prediction{}, err
	}

	params := c.cfg.legacyParams()
	params.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.serverURL, dataset, version, params.Encode())

	results := make([]Result, 0, len(encoded))
	for _, payload := range encoded {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
		if err != nil {
			return Prediction{}, fmt.Errorf("build legacy request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		c.logCall(callID(), string(ModeLegacy), endpoint)

		body, header, err := c.do(req)
		if err != nil {
			return Prediction{}, err
		}
		result, err := c.normalizeLegacy(body, header)
		if err != nil {
			return Prediction{}, err
		}
		results = append(results, result)
	}
	return unwrapResults(results), nil
}

// splitModelID decomposes a legacy model identifier into its dataset and
// version segments. Exactly two non-empty segments are required; violations
// fail before any network call.
func splitModelID(modelID string) (dataset, version string, err error) {
	chunks := strings.Split(modelID, "/")
	if len(chunks) != 2 || chunks[0] == "" || chunks[1] == "" {
		return "", "", &InvalidModelIDError{
			ModelID: modelID,
			Reason:  "expected exactly two non-empty segments separated by /",
		}
	}
	return chunks[0], chunks[1], nil
}
