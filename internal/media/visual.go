package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	// Register the codecs the server renders visualizations with.
	_ "image/jpeg"
	_ "image/png"
)

// Format selects the representation a decoded visualization is delivered in.
type Format string

const (
	// FormatBase64 keeps the wire representation (base64 text).
	FormatBase64 Format = "base64"
	// FormatJPEG delivers the raw compressed image bytes.
	FormatJPEG Format = "jpeg"
	// FormatImage decodes into an in-memory image.Image.
	FormatImage Format = "image"
)

// Visualization is a rendered inference artifact in the caller's configured
// representation. Exactly one of Base64, Bytes or Image is populated,
// according to Format.
type Visualization struct {
	Format Format
	Base64 string
	Bytes  []byte
	Image  image.Image
}

// DecodeVisualization decodes a base64 visualization payload into the given
// format. An empty format defaults to FormatBase64.
func DecodeVisualization(encoded string, f Format) (*Visualization, error) {
	if f == "" || f == FormatBase64 {
		return &Visualization{Format: FormatBase64, Base64: encoded}, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64 visualization: %w", err)
	}
	return DecodeVisualizationBytes(raw, f)
}

// DecodeVisualizationBytes decodes raw visualization image bytes into the
// given format. An empty format defaults to FormatBase64.
func DecodeVisualizationBytes(raw []byte, f Format) (*Visualization, error) {
	switch f {
	case "", FormatBase64:
		return &Visualization{
			Format: FormatBase64,
			Base64: base64.StdEncoding.EncodeToString(raw),
		}, nil
	case FormatJPEG:
		return &Visualization{Format: FormatJPEG, Bytes: raw}, nil
	case FormatImage:
		img, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode visualization image: %w", err)
		}
		return &Visualization{Format: FormatImage, Image: img}, nil
	default:
		return nil, fmt.Errorf("unknown visualization format: %q", f)
	}
}
