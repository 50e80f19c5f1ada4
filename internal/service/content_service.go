package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"
	"eng_assess_backend/pkg/logger"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// UploadResult 资源文件上传结果，供前端填充资源表单
type UploadResult struct {
	URL       string             `json:"url"`
	Thumbnail string             `json:"thumbnail,omitempty"`
	Type      model.ResourceType `json:"type"`
	MimeType  string             `json:"mimeType"`
	Size      int64              `json:"size"`
	Duration  float64            `json:"duration,omitempty"`
}

// ContentService 处理资源文件：图片生成缩略图，视频抓帧并读取时长
type ContentService struct {
	Storage *StorageService
	TempDir string
}

func NewContentService(storage *StorageService, tempDir string) *ContentService {
	return &ContentService{
		Storage: storage,
		TempDir: tempDir,
	}
}

func allowedExtension(ext string) bool {
	if ext == ".pdf" {
		return true
	}
	for _, e := range util.AllowedVideoExtensions {
		if e == ext {
			return true
		}
	}
	for _, e := range util.AllowedImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (s *ContentService) Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtension(ext) {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidFileType, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	mimeType, err := util.ValidateMimeType(src, util.AllowedUploadMimeTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidFileType, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch {
	case util.IsImage(mimeType):
		return s.uploadImage(ctx, src, ext, mimeType)
	case util.IsVideo(mimeType):
		return s.uploadVideo(ctx, src, ext, mimeType)
	}

	url, err := s.Storage.Save(ctx, ObjectDocument, ext, src, file.Size, mimeType)
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: url, Type: model.ResourceBook, MimeType: mimeType, Size: file.Size}, nil
}

func (s *ContentService) uploadImage(ctx context.Context, src io.Reader, ext, mimeType string) (*UploadResult, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.Save(ctx, ObjectImage, ext, bytes.NewReader(data), int64(len(data)), mimeType)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{URL: url, Type: model.ResourceArticle, MimeType: mimeType, Size: int64(len(data))}

	thumb, err := Thumbnail(bytes.NewReader(data))
	if err != nil {
		logger.Log.Warn("生成图片缩略图失败", zap.Error(err))
		return result, nil
	}
	thumbURL, err := s.Storage.Save(ctx, ObjectThumbnail, ".jpg", bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		logger.Log.Warn("上传缩略图失败", zap.Error(err))
		return result, nil
	}
	result.Thumbnail = thumbURL
	return result, nil
}

// Thumbnail 等比缩放到缩略图尺寸内并编码为 JPEG
func Thumbnail(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, util.ThumbnailWidth, util.ThumbnailHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ContentService) uploadVideo(ctx context.Context, src io.Reader, ext, mimeType string) (*UploadResult, error) {
	// 临时保存到本地供 ffmpeg 处理
	if err := os.MkdirAll(s.TempDir, 0755); err != nil {
		return nil, err
	}
	videoPath := filepath.Join(s.TempDir, fmt.Sprintf("video_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(dst, src)
	dst.Close()
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.SaveFile(ctx, ObjectVideo, ext, videoPath, mimeType)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{URL: url, Type: model.ResourceVideo, MimeType: mimeType, Size: size}

	if info, err := util.GetVideoInfo(videoPath); err != nil {
		logger.Log.Warn("读取视频信息失败", zap.Error(err))
	} else {
		result.Duration = info.Duration
	}

	thumbPath := strings.TrimSuffix(videoPath, ext) + ".jpg"
	defer os.Remove(thumbPath)
	if err := util.GenerateThumbnail(videoPath, thumbPath, "1"); err != nil {
		logger.Log.Warn("生成视频缩略图失败", zap.Error(err))
		return result, nil
	}
	if thumbURL, err := s.Storage.SaveFile(ctx, ObjectThumbnail, ".jpg", thumbPath, "image/jpeg"); err != nil {
		logger.Log.Warn("上传缩略图失败", zap.Error(err))
	} else {
		result.Thumbnail = thumbURL
	}

	return result, nil
}
