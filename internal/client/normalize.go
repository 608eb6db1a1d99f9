package client

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"visor/internal/media"
)

// normalizeLegacy processes one legacy response. When the content type
// indicates a binary image the body IS the visualization: it is decoded into
// the configured representation and the document becomes
// {"visualization": <base64>}. Any other body is a JSON document passed
// through unchanged.
func (c *Client) normalizeLegacy(body []byte, header http.Header) (Result, error) {
	if isImageContentType(header.Get("Content-Type")) {
		vis, err := media.DecodeVisualizationBytes(body, c.cfg.VisualizationFormat)
		if err != nil {
			return Result{}, err
		}
		doc, err := sjson.SetBytes([]byte(`{}`), "visualization", base64.StdEncoding.EncodeToString(body))
		if err != nil {
			return Result{}, fmt.Errorf("build visualization document: %w", err)
		}
		return Result{Doc: doc, Visualization: vis}, nil
	}
	if !sonic.Valid(body) {
		return Result{}, fmt.Errorf("unexpected non-JSON inference response")
	}
	return Result{Doc: body}, nil
}

// normalizeNew processes one new-protocol response: always a JSON document;
// an embedded base64 "visualization" entry, when present, is decoded into the
// configured representation and attached to the result.
func (c *Client) normalizeNew(body []byte) (Result, error) {
	if !sonic.Valid(body) {
		return Result{}, fmt.Errorf("unexpected non-JSON inference response")
	}
	visNode := gjson.GetBytes(body, "visualization")
	if !visNode.Exists() || visNode.Type != gjson.String || visNode.String() == "" {
		return Result{Doc: body}, nil
	}
	vis, err := media.DecodeVisualization(visNode.String(), c.cfg.VisualizationFormat)
	if err != nil {
		return Result{}, err
	}
	return Result{Doc: body, Visualization: vis}, nil
}

func isImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.TrimSpace(strings.ToLower(contentType)), "image/")
}
