package helper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/configs"
)

const cacheForever = "public, max-age=31536000, immutable"

// Uploaded: hasil upload yang disimpan di DB.
type Uploaded struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Storage dipakai controller; nil berarti OSS belum dikonfigurasi.
type Storage interface {
	UploadImageAsWebP(ctx context.Context, dir string, fh *multipart.FileHeader) (Uploaded, error)
	UploadImageWithThumb(ctx context.Context, dir string, fh *multipart.FileHeader, thumbSize int) (img Uploaded, thumb Uploaded, err error)
	UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader, allowedExt ...string) (Uploaded, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
	MoveToTrash(ctx context.Context, publicURL string) (string, error)
}

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	PublicBase string
	Prefix     string
	MaxImage   int64
	MaxFile    int64
	WebP       WebPOptions
}

var _ Storage = (*OSSService)(nil)

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := configs.GetEnv("ALI_OSS_ENDPOINT")
	ak := configs.GetEnv("ALI_OSS_ACCESS_KEY")
	sk := configs.GetEnv("ALI_OSS_SECRET_KEY")
	bucketName := configs.GetEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var opts []oss.ClientOption
	if sts := configs.GetEnv("ALI_OSS_SECURITY_TOKEN"); sts != "" {
		opts = append(opts, oss.SecurityToken(sts))
	}
	client, err := oss.New(endpoint, ak, sk, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	log.Printf("[OSS] bucket=%s endpoint=%s prefix=%q", bucketName, endpoint, prefix)

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		PublicBase: configs.GetEnv("ALI_OSS_PUBLIC_BASE"),
		Prefix:     strings.Trim(prefix, "/"),
		MaxImage:   int64(configs.GetEnvInt("UPLOAD_MAX_IMAGE_MB", 5)) << 20,
		MaxFile:    int64(configs.GetEnvInt("UPLOAD_MAX_FILE_MB", 50)) << 20,
		WebP:       WebPOptionsFromEnv(),
	}, nil
}

func (s *OSSService) PublicURL(key string) string {
	return PublicURLFor(s.PublicBase, s.Endpoint, s.BucketName, key)
}

func readAll(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if limit > 0 && fh.Size > limit {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("Ukuran file maksimal %d MB", limit>>20))
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()
	return io.ReadAll(src)
}

func (s *OSSService) put(ctx context.Context, key string, data []byte, contentType string) error {
	return s.Bucket.PutObject(key, bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl(cacheForever),
	)
}

func (s *OSSService) uploadWebP(ctx context.Context, dir, filename string, data []byte) (Uploaded, error) {
	key := BuildObjectKey(s.Prefix, dir, filename, ".webp", time.Now())
	if err := s.put(ctx, key, data, "image/webp"); err != nil {
		log.Printf("[OSS] put %s gagal: %v", key, err)
		return Uploaded{}, fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return Uploaded{URL: s.PublicURL(key), Key: key, ContentType: "image/webp", Size: int64(len(data))}, nil
}

func imageErr(err error) error {
	if errors.Is(err, ErrUnsupportedImage) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (pakai jpg/png/webp)")
	}
	return err
}

// UploadImageAsWebP: recompress ke webp lalu upload.
func (s *OSSService) UploadImageAsWebP(ctx context.Context, dir string, fh *multipart.FileHeader) (Uploaded, error) {
	raw, err := readAll(fh, s.MaxImage)
	if err != nil {
		return Uploaded{}, err
	}
	data, err := ConvertToWebP(raw, fh.Filename, s.WebP)
	if err != nil {
		return Uploaded{}, imageErr(err)
	}
	return s.uploadWebP(ctx, dir, fh.Filename, data)
}

// UploadImageWithThumb: gambar utama + thumbnail di <dir>/thumbs.
func (s *OSSService) UploadImageWithThumb(ctx context.Context, dir string, fh *multipart.FileHeader, thumbSize int) (Uploaded, Uploaded, error) {
	raw, err := readAll(fh, s.MaxImage)
	if err != nil {
		return Uploaded{}, Uploaded{}, err
	}
	full, err := ConvertToWebP(raw, fh.Filename, s.WebP)
	if err != nil {
		return Uploaded{}, Uploaded{}, imageErr(err)
	}
	thumb, err := Thumbnail(raw, fh.Filename, thumbSize)
	if err != nil {
		return Uploaded{}, Uploaded{}, imageErr(err)
	}

	img, err := s.uploadWebP(ctx, dir, fh.Filename, full)
	if err != nil {
		return Uploaded{}, Uploaded{}, err
	}
	th, err := s.uploadWebP(ctx, strings.TrimRight(dir, "/")+"/thumbs", fh.Filename, thumb)
	if err != nil {
		_ = s.Bucket.DeleteObject(img.Key, oss.WithContext(ctx))
		return Uploaded{}, Uploaded{}, err
	}
	return img, th, nil
}

// UploadFile: upload apa adanya (PDF, dokumen). allowedExt kosong = semua boleh.
func (s *OSSService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader, allowedExt ...string) (Uploaded, error) {
	if fh == nil {
		return Uploaded{}, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if len(allowedExt) > 0 && !containsExt(allowedExt, ext) {
		return Uploaded{}, fiber.NewError(fiber.StatusUnsupportedMediaType, "Tipe file tidak diizinkan: "+ext)
	}
	raw, err := readAll(fh, s.MaxFile)
	if err != nil {
		return Uploaded{}, err
	}
	ct := mime.TypeByExtension(ext)
	if ct == "" {
		ct = http.DetectContentType(raw)
	}

	key := BuildObjectKey(s.Prefix, dir, fh.Filename, "", time.Now())
	if err := s.put(ctx, key, raw, ct); err != nil {
		log.Printf("[OSS] put %s gagal: %v", key, err)
		return Uploaded{}, fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return Uploaded{URL: s.PublicURL(key), Key: key, ContentType: ct, Size: int64(len(raw))}, nil
}

func containsExt(list []string, ext string) bool {
	for _, e := range list {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func (s *OSSService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := KeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return s.Bucket.DeleteObject(key, oss.WithContext(ctx))
}

// MoveToTrash: copy ke trash/ lalu hapus sumber (best-effort). Return URL trash.
func (s *OSSService) MoveToTrash(ctx context.Context, publicURL string) (string, error) {
	srcKey, err := KeyFromPublicURL(publicURL)
	if err != nil {
		return "", err
	}
	dstKey := TrashKey(srcKey, time.Now())
	if _, err := s.Bucket.CopyObject(srcKey, dstKey, oss.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("copy %q -> %q: %w", srcKey, dstKey, err)
	}
	if err := s.Bucket.DeleteObject(srcKey, oss.WithContext(ctx)); err != nil {
		log.Printf("[OSS] hapus sumber %s gagal: %v", srcKey, err)
	}
	return s.PublicURL(dstKey), nil
}

// FormFile: ambil file dari beberapa kemungkinan nama field. (nil, nil) kalau tidak ada.
func FormFile(c *fiber.Ctx, fields ...string) *multipart.FileHeader {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return nil
	}
	if len(fields) == 0 {
		fields = []string{"file", "image", "cover"}
	}
	for _, f := range fields {
		if fh, err := c.FormFile(f); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

// RequireStorage: 503 kalau OSS tidak dikonfigurasi.
func RequireStorage(s Storage) error {
	if s == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}
	return nil
}
