package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = Float(0.75)
	cfg.Overlap = Float(0.5)
	cfg.ShowLabels = Bool(true)
	cfg.StrokeWidth = Int(2)
	cfg.Visualize = Bool(true)

	params := cfg.legacyParams()
	assert.Equal(t, "0.75", params.Get("confidence"))
	assert.Equal(t, "0.5", params.Get("overlap"))
	assert.Equal(t, "true", params.Get("labels"))
	assert.Equal(t, "2", params.Get("stroke"))
	assert.Equal(t, "image", params.Get("format"))
}

func TestLegacyParamsOmitsUnset(t *testing.T) {
	params := DefaultConfig().legacyParams()
	assert.Empty(t, params)
}

func TestNewParamsPerCategory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Confidence = Float(0.6)
	cfg.IoUThreshold = Float(0.3)
	cfg.MaxDetections = Int(100)
	cfg.MaxCandidates = Int(5)
	cfg.ClassFilter = []string{"coin"}

	detection := cfg.newParams(ObjectDetection)
	assert.Equal(t, 0.6, detection["confidence"])
	assert.Equal(t, 0.3, detection["iou_threshold"])
	assert.Equal(t, 100, detection["max_detections"])
	assert.NotContains(t, detection, "max_candidates")

	classification := cfg.newParams(Classification)
	assert.Equal(t, 0.6, classification["confidence"])
	assert.Equal(t, 5, classification["max_candidates"])
	assert.NotContains(t, classification, "iou_threshold")
	assert.NotContains(t, classification, "max_detections")
	assert.NotContains(t, classification, "class_filter")

	segmentation := cfg.newParams(InstanceSegmentation)
	assert.Equal(t, []string{"coin"}, segmentation["class_filter"])
}
