package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestDownscaleKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	out := downscale(src, 1000, 1000)
	assert.Equal(t, 1000, out.Bounds().Dx())
	assert.Equal(t, 500, out.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, downscale(small, 100, 100))
}

func TestConvertToWebP(t *testing.T) {
	data, err := ConvertToWebP(pngBytes(t, 64, 32), "foto.png", WebPOptions{MaxW: 32, Quality: 70})
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))

	_, err = ConvertToWebP([]byte("%PDF-1.4 bukan gambar"), "x.pdf", WebPOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestThumbnail(t *testing.T) {
	data, err := Thumbnail(pngBytes(t, 800, 400), "foto.png", 400)
	require.NoError(t, err)
	img, err := decodeImage(data, "t.webp")
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	key := BuildObjectKey("uploads/", "/news/abc/", "Foto Upacara.JPG", ".webp", now)
	assert.True(t, strings.HasPrefix(key, "uploads/news/abc/foto-upacara_20250304_050607_"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"))

	key = BuildObjectKey("", "books", "Modul.PDF", "", now)
	assert.True(t, strings.HasPrefix(key, "books/modul_"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}

func TestPublicURLAndKey(t *testing.T) {
	u := PublicURLFor("", "https://oss-ap-southeast-5.aliyuncs.com", "sekolah", "news/a.webp")
	assert.Equal(t, "https://sekolah.oss-ap-southeast-5.aliyuncs.com/news/a.webp", u)
	assert.Equal(t, "https://cdn.sekolah.id/news/a.webp", PublicURLFor("https://cdn.sekolah.id/", "", "", "news/a.webp"))

	key, err := KeyFromPublicURL(u)
	require.NoError(t, err)
	assert.Equal(t, "news/a.webp", key)

	_, err = KeyFromPublicURL("https://cdn.sekolah.id/")
	assert.Error(t, err)
}

func TestTrashKey(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "trash/2025/01/02/030405__a.webp", TrashKey("gallery/x/a.webp", now))
}
