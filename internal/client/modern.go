package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"

	"visor/internal/media"
)

// inferEndpoints is the closed category -> endpoint table of the new
// protocol. It has exactly one entry per category and no fallback; an
// unmapped category is a programming error, not a runtime path.
var inferEndpoints = map[Category]string{
	ObjectDetection:      "/infer/object_detection",
	Classification:       "/infer/classification",
	InstanceSegmentation: "/infer/instance_segmentation",
}

// inferNew speaks the new protocol: one POST per encoded input to the
// category-keyed endpoint, with a JSON body carrying credential, model
// identifier, call parameters and the input tagged as a base64 image.
func (c *Client) inferNew(ctx context.Context, inputs []media.Input, opts *InferOptions) (Prediction, error) {
	modelID, err := c.resolveModelID(opts)
	if err != nil {
		return Prediction{}, err
	}
	category := c.resolveCategory(opts)
	path, ok := inferEndpoints[category]
	if !ok {
		return Prediction{}, fmt.Errorf("no inference endpoint for model category %q", category)
	}
	endpoint := c.serverURL + path

	encoded, err := media.EncodeAll(inputs)
	if err != nil {
		return Prediction{}, err
	}

	payload := map[string]any{
		"api_key":  c.apiKey,
		"model_id": modelID,
	}
	for key, value := range c.cfg.newParams(category) {
		payload[key] = value
	}

	results := make([]Result, 0, len(encoded))
	for _, element := range encoded {
		payload["image"] = map[string]any{"type": "base64", "value": element}
		body, err := sonic.Marshal(payload)
		if err != nil {
			return Prediction{}, fmt.Errorf("marshal inference payload: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return Prediction{}, fmt.Errorf("build inference request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		c.logCall(callID(), string(ModeNew), endpoint)

		respBody, _, err := c.do(req)
		if err != nil {
			return Prediction{}, err
		}
		result, err := c.normalizeNew(respBody)
		if err != nil {
			return Prediction{}, err
		}
		results = append(results, result)
	}
	return unwrapResults(results), nil
}
