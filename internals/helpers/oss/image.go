package helper

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"sekolahku_backend/internals/configs"
)

var ErrUnsupportedImage = errors.New("format tidak didukung")

/* =======================================================================
   Konfigurasi WebP (ENV)
======================================================================= */

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	Quality  float32 // 1..100
	Lossless bool
}

func WebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:    configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:    configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		Quality: float32(configs.GetEnvInt("IMAGE_WEBP_QUALITY", 80)),
	}
}

// decodeImage: sniff MIME dulu, fallback ekstensi.
func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("file kosong")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	kind := http.DetectContentType(head)
	if !strings.HasPrefix(kind, "image/") {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			kind = "image/jpeg"
		case ".png":
			kind = "image/png"
		case ".webp":
			kind = "image/webp"
		}
	}

	r := bytes.NewReader(all)
	switch kind {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind)
}

// downscale keep-aspect, CatmullRom.
func downscale(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 && h > maxH {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	if scale >= 1 {
		return src
	}
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	q := opt.Quality
	if q <= 0 || q > 100 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToWebP: decode → downscale → encode webp.
func ConvertToWebP(raw []byte, filename string, opt WebPOptions) ([]byte, error) {
	img, err := decodeImage(raw, filename)
	if err != nil {
		return nil, err
	}
	return encodeWebP(downscale(img, opt.MaxW, opt.MaxH), opt)
}

// Thumbnail: muat di kotak size×size (tanpa crop), hasil webp.
func Thumbnail(raw []byte, filename string, size int) ([]byte, error) {
	img, err := decodeImage(raw, filename)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 400
	}
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)
	return encodeWebP(thumb, WebPOptions{Quality: 75})
}
