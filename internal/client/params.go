package client

import (
	"net/url"
	"strconv"

	"visor/internal/media"
)

// InferenceConfig carries the tunable inference call parameters. Nil pointer
// fields are unset and omitted from requests, so the server applies its own
// defaults. The same configuration feeds both protocols; each builder maps it
// to its own parameter naming.
type InferenceConfig struct {
	Confidence    *float64
	Overlap       *float64 // legacy-only box merge threshold
	IoUThreshold  *float64 // new-mode NMS threshold
	MaxCandidates *int
	MaxDetections *int
	ClassFilter   []string
	Visualize     *bool
	ShowLabels    *bool
	StrokeWidth   *int

	// VisualizationFormat is the representation decoded visualizations are
	// delivered in; the zero value means base64.
	VisualizationFormat media.Format

	// ImageExtensions limits directory scans of frame sources.
	ImageExtensions []string
}

// DefaultConfig returns the configuration a fresh client starts with.
func DefaultConfig() InferenceConfig {
	return InferenceConfig{
		VisualizationFormat: media.FormatBase64,
		ImageExtensions:     []string{".jpg", ".jpeg", ".png"},
	}
}

// legacyParams renders the configuration as legacy query parameters.
func (cfg InferenceConfig) legacyParams() url.Values {
	params := url.Values{}
	if cfg.Confidence != nil {
		params.Set("confidence", formatFloat(*cfg.Confidence))
	}
	if cfg.Overlap != nil {
		params.Set("overlap", formatFloat(*cfg.Overlap))
	}
	if cfg.MaxDetections != nil {
		params.Set("max_detections", strconv.Itoa(*cfg.MaxDetections))
	}
	if cfg.StrokeWidth != nil {
		params.Set("stroke", strconv.Itoa(*cfg.StrokeWidth))
	}
	if cfg.ShowLabels != nil {
		params.Set("labels", strconv.FormatBool(*cfg.ShowLabels))
	}
	// The legacy API renders the visualization by answering with an image
	// body instead of JSON.
	if cfg.Visualize != nil && *cfg.Visualize {
		params.Set("format", "image")
	}
	return params
}

// newParams renders the configuration as new-mode body parameters. Threshold
// parameters that only apply to localization tasks are dropped for
// classification, mirroring the server's per-endpoint schemas.
func (cfg InferenceConfig) newParams(category Category) map[string]any {
	params := map[string]any{}
	if cfg.Confidence != nil {
		params["confidence"] = *cfg.Confidence
	}
	if category == Classification {
		if cfg.MaxCandidates != nil {
			params["max_candidates"] = *cfg.MaxCandidates
		}
	} else {
		if cfg.IoUThreshold != nil {
			params["iou_threshold"] = *cfg.IoUThreshold
		}
		if cfg.MaxDetections != nil {
			params["max_detections"] = *cfg.MaxDetections
		}
		if len(cfg.ClassFilter) > 0 {
			params["class_filter"] = cfg.ClassFilter
		}
	}
	if cfg.Visualize != nil {
		params["visualize_predictions"] = *cfg.Visualize
	}
	if cfg.ShowLabels != nil {
		params["visualization_labels"] = *cfg.ShowLabels
	}
	if cfg.StrokeWidth != nil {
		params["visualization_stroke_width"] = *cfg.StrokeWidth
	}
	return params
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float, Int and Bool are pointer helpers for the optional config fields.
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func Bool(v bool) *bool        { return &v }
