// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalises uploaded project images before they go to
// object storage. Oversized images are downscaled with a high-quality
// Catmull-Rom kernel; smaller images pass through untouched to avoid
// upscaling. JPEG, PNG, GIF, and WebP sources are decoded; output is
// re-encoded as JPEG or PNG depending on whether the source has alpha.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// MaxWidth is the widest image served on the gallery. Wider uploads
	// are downscaled to this.
	MaxWidth = 1920

	// jpegQuality balances file size against visible artifacts on
	// large photographic work samples.
	jpegQuality = 85
)

// Result holds a processed image ready for upload.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string // file extension including the dot
	Width       int
	Height      int
}

// Process decodes an uploaded image, downscales it if wider than MaxWidth,
// and re-encodes it. Returns an error for data that is not a decodable image.
func Process(original []byte) (*Result, error) {
	src, format, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > MaxWidth {
		targetHeight := height * MaxWidth / width
		dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, targetHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
		width, height = MaxWidth, targetHeight
	}

	data, contentType, ext, err := encode(src, format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:        data,
		ContentType: contentType,
		Ext:         ext,
		Width:       width,
		Height:      height,
	}, nil
}

// encode picks the output format. PNG sources keep PNG so transparency
// in logo and infographic uploads survives; everything else becomes JPEG.
func encode(img image.Image, sourceFormat string) ([]byte, string, string, error) {
	var buf bytes.Buffer

	if sourceFormat == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", "", fmt.Errorf("imaging: encode png: %w", err)
		}
		return buf.Bytes(), "image/png", ".png", nil
	}

	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", "", fmt.Errorf("imaging: encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", ".jpg", nil
}
