// Package image performs upload admission checks and normalizes accepted
// images to a fixed-size PNG before they reach blob storage.
package image

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/taskhive/taskhive-server/internal/model"
)

const (
	// MaxUploadSize bounds an inbound image before any decode work begins.
	MaxUploadSize = 1 << 20 // 1MB

	// Width and Height of every stored image.
	Width  = 250
	Height = 250
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// CheckFilename rejects uploads whose filename extension is not
// jpg/jpeg/png. This runs before the body is read.
func CheckFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return model.ErrUnsupportedFileType
	}
	return nil
}

// Normalize reads at most MaxUploadSize bytes, decodes the image, resizes
// it to Width x Height and re-encodes it as PNG.
func Normalize(r io.Reader) ([]byte, error) {
	// One extra byte distinguishes "exactly at the limit" from "over it".
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, model.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, model.ErrMissingFile
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, model.ErrUnsupportedFileType
	}

	resized := imaging.Resize(img, Width, Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}
