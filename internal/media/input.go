// Package media holds the image collaborators of the inference client: input
// encoding into transport-ready base64 payloads, frame sources for streamed
// inference, and decoding of visualization artifacts returned by the server.
package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

// Input is one caller-supplied image reference that can encode itself into a
// transport-ready base64 payload. The client issues one request per Input and
// keeps result order aligned with input order.
type Input interface {
	Encode() (string, error)
}

// Bytes is an already-compressed image (JPEG/PNG/... bytes).
type Bytes []byte

func (b Bytes) Encode() (string, error) {
	return base64.StdEncoding.EncodeToString(b), nil
}

// File references an image on disk.
type File string

func (f File) Encode() (string, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return "", fmt.Errorf("read image file %s: %w", string(f), err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Base64 is a payload the caller already encoded; it is passed through as-is.
type Base64 string

func (b Base64) Encode() (string, error) {
	return string(b), nil
}

// Image is an in-memory decoded image, JPEG-compressed before transport.
type Image struct {
	Img     image.Image
	Quality int // jpeg quality, 0 means jpeg.DefaultQuality
}

func (i Image) Encode() (string, error) {
	quality := i.Quality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, i.Img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("jpeg encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeAll encodes every input, preserving order.
func EncodeAll(inputs []Input) ([]string, error) {
	encoded := make([]string, 0, len(inputs))
	for i, input := range inputs {
		payload, err := input.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode input %d: %w", i, err)
		}
		encoded = append(encoded, payload)
	}
	return encoded, nil
}
