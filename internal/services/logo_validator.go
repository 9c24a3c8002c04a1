package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxLogoSizeBytes is the upper bound on an uploaded logo
const MaxLogoSizeBytes = 2 * 1024 * 1024

// RequiredLogoDimension is the exact width and height a logo must have
const RequiredLogoDimension = 512

var (
	ErrLogoInvalidFormat     = errors.New("logo must be a JPEG, PNG or WebP image")
	ErrLogoTooLarge          = fmt.Errorf("logo must be at most %d bytes", MaxLogoSizeBytes)
	ErrLogoInvalidDimensions = fmt.Errorf("logo must be exactly %dx%d pixels", RequiredLogoDimension, RequiredLogoDimension)
	ErrLogoUnreadable        = errors.New("logo image could not be decoded")
)

var allowedLogoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// LogoAsset is a validated logo ready for upload
type LogoAsset struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// ValidateLogo checks format, size and dimensions of an uploaded logo.
// Content type is sniffed from the bytes, never trusted from the client.
func ValidateLogo(data []byte) (*LogoAsset, error) {
	if len(data) == 0 {
		return nil, ErrLogoUnreadable
	}
	if len(data) > MaxLogoSizeBytes {
		return nil, ErrLogoTooLarge
	}

	contentType := http.DetectContentType(data)
	if !allowedLogoTypes[contentType] {
		return nil, ErrLogoInvalidFormat
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrLogoUnreadable
	}
	if cfg.Width != RequiredLogoDimension || cfg.Height != RequiredLogoDimension {
		return nil, ErrLogoInvalidDimensions
	}

	return &LogoAsset{
		Data:        data,
		ContentType: contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}
