// Package storage 保存帖子图片。对象名为 posts/<uuid><ext>。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/d60-Lab/yatube/config"
)

// ImageStore 图片存储
type ImageStore interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
	URL(key string) string
}

// New 根据配置创建存储实现
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinioStore(ctx, cfg.Minio)
	case "local", "":
		return NewLocalStore(cfg.LocalDir, cfg.LocalURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// ErrNotImage 文件内容不是允许的位图格式
var ErrNotImage = errors.New("not an allowed image")

// imageTypes 允许上传的格式；SVG 可携带脚本，不在其中
var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Sniff 按内容识别图片格式，返回规范 MIME 与扩展名。文件名和客户端 Content-Type 不参与判断。
func Sniff(r io.Reader) (contentType, ext string, err error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", err
	}
	for _, allowed := range imageTypes {
		if mt.Is(allowed) {
			return allowed, mt.Extension(), nil
		}
	}
	return "", "", ErrNotImage
}

// SniffFile 对上传文件执行 Sniff
func SniffFile(fh *multipart.FileHeader) (contentType, ext string, err error) {
	f, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	return Sniff(f)
}

// ObjectName 生成唯一对象名，ext 来自 Sniff
func ObjectName(ext string) string {
	return path.Join("posts", uuid.New().String()+strings.ToLower(ext))
}

// MinioStore 上传到 MinIO / S3 兼容存储
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(ctx context.Context, cfg config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	public := cfg.PublicURL
	if public == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(public, "/")}, nil
}

func (s *MinioStore) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, ext, err := SniffFile(fh)
	if err != nil {
		return "", err
	}
	key := ObjectName(ext)
	_, err = s.client.PutObject(ctx, s.bucket, key, src, fh.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (s *MinioStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + key
}

// LocalStore 写入本地目录，由 /media 静态路由提供访问
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(_ context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	_, ext, err := SniffFile(fh)
	if err != nil {
		return "", err
	}
	key := ObjectName(ext)
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", err
	}
	return key, out.Close()
}

func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + key
}
