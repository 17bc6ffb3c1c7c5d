package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	webpenc "github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	MaxUploadBytes  = 10 << 20
	MaxPixels       = 40_000_000
	webpQuality     = 78
	ContentTypeWebP = "image/webp"
)

var (
	ErrEmptyImage       = errors.New("photo file is empty")
	ErrUnsupportedImage = errors.New("photo must be png, jpeg, or webp")
	ErrUndecodableImage = errors.New("unable to decode photo")
	ErrImageTooLarge    = errors.New("photo exceeds the 10 MB upload limit")
	ErrImageDimensions  = errors.New("photo dimensions exceed the pixel limit")
)

// ToWebP decodes a JPEG, PNG or WebP upload, scales it down to maxWidth
// keeping the aspect ratio and re-encodes it as lossy WebP. Bodies over
// MaxUploadBytes and headers declaring more than MaxPixels are refused
// before any pixel data is decoded.
func ToWebP(r io.Reader, maxWidth int) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyImage
	}
	if len(raw) > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}

	kind := http.DetectContentType(raw)
	switch kind {
	case "image/png", "image/jpeg", ContentTypeWebP:
	default:
		return nil, ErrUnsupportedImage
	}

	cfg, err := decodeConfig(kind, raw)
	if err != nil {
		return nil, ErrUndecodableImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrUndecodableImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, ErrImageDimensions
	}

	var img image.Image
	if kind == ContentTypeWebP {
		img, err = webp.Decode(bytes.NewReader(raw))
	} else {
		img, _, err = image.Decode(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, ErrUndecodableImage
	}

	b := img.Bounds()
	w, h := FitWidth(b.Dx(), b.Dy(), maxWidth)
	if w <= 0 || h <= 0 {
		return nil, ErrUndecodableImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	var out bytes.Buffer
	if err := webpenc.Encode(&out, dst, &webpenc.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decodeConfig(kind string, raw []byte) (image.Config, error) {
	if kind == ContentTypeWebP {
		return webp.DecodeConfig(bytes.NewReader(raw))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	return cfg, err
}

// FitWidth returns the target size for a width x height image. Images
// narrower than maxWidth, or any image when maxWidth <= 0, keep their size.
func FitWidth(width, height, maxWidth int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	h := (height*maxWidth + width/2) / width
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}
