package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectKind 资源文件在存储中的分类目录
type ObjectKind string

const (
	ObjectDocument  ObjectKind = "resources/documents"
	ObjectImage     ObjectKind = "resources/images"
	ObjectVideo     ObjectKind = "resources/videos"
	ObjectThumbnail ObjectKind = "resources/thumbnails"
)

// ObjectKey 生成 <分类>/<年>/<月>/<uuid><扩展名>
func ObjectKey(kind ObjectKind, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s%s", kind, now.Format("2006/01"), uuid.New().String(), ext)
}

// objectStore 各存储后端只需要写入和拼接访问地址
type objectStore interface {
	put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	putFile(ctx context.Context, key, localPath, contentType string) error
	url(key string) string
}

type localStore struct {
	root string
}

func (s *localStore) put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, r)
	return err
}

func (s *localStore) putFile(ctx context.Context, key, localPath, contentType string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()
	return s.put(ctx, key, src, 0, contentType)
}

// 与路由中的 /uploads 静态目录对应
func (s *localStore) url(key string) string {
	return "/uploads/" + key
}

type minioStore struct {
	client *minio.Client
	bucket string
	base   string
}

func newMinioStore(cfg *config.StorageConfig) (*minioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	scheme := "http"
	if cfg.MinioSecure {
		scheme = "https"
	}
	return &minioStore{
		client: client,
		bucket: cfg.MinioBucket,
		base:   fmt.Sprintf("%s://%s/%s/", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (s *minioStore) put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *minioStore) putFile(ctx context.Context, key, localPath, contentType string) error {
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *minioStore) url(key string) string {
	return s.base + key
}

type ossStore struct {
	bucket *oss.Bucket
	base   string
}

func newOSSStore(cfg *config.StorageConfig) (*ossStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &ossStore{
		bucket: bucket,
		base:   fmt.Sprintf("https://%s.%s/", cfg.OSSBucket, cfg.OSSEndpoint),
	}, nil
}

func (s *ossStore) put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	return s.bucket.PutObject(key, r, oss.ContentType(contentType), oss.WithContext(ctx))
}

func (s *ossStore) putFile(ctx context.Context, key, localPath, contentType string) error {
	return s.bucket.PutObjectFromFile(key, localPath, oss.ContentType(contentType), oss.WithContext(ctx))
}

func (s *ossStore) url(key string) string {
	return s.base + key
}

// StorageService 保存资源文件并返回访问地址。远端存储初始化失败时退回本地目录
type StorageService struct {
	Backend string
	store   objectStore
	now     func() time.Time
}

func NewStorageService(cfg *config.StorageConfig) *StorageService {
	svc := &StorageService{now: time.Now}

	var err error
	switch cfg.Type {
	case util.StorageMinio:
		svc.store, err = newMinioStore(cfg)
	case util.StorageOSS:
		svc.store, err = newOSSStore(cfg)
	}
	if err != nil {
		logger.Log.Error("Failed to initialize resource storage, falling back to local",
			zap.String("type", cfg.Type), zap.Error(err))
		svc.store = nil
	}

	if svc.store == nil {
		svc.Backend = util.StorageLocal
		svc.store = &localStore{root: cfg.LocalPath}
	} else {
		svc.Backend = cfg.Type
	}
	return svc
}

// Save 写入一个资源对象
func (s *StorageService) Save(ctx context.Context, kind ObjectKind, ext string, r io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(kind, ext, s.now())
	if err := s.store.put(ctx, key, r, size, contentType); err != nil {
		return "", fmt.Errorf("save %s: %w", kind, err)
	}
	return s.store.url(key), nil
}

// SaveFile 写入本地临时文件（视频与抓帧缩略图）
func (s *StorageService) SaveFile(ctx context.Context, kind ObjectKind, ext, localPath, contentType string) (string, error) {
	key := ObjectKey(kind, ext, s.now())
	if err := s.store.putFile(ctx, key, localPath, contentType); err != nil {
		return "", fmt.Errorf("save %s: %w", kind, err)
	}
	return s.store.url(key), nil
}
