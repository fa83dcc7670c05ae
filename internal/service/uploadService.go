package service

import (
	"bytes"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"github.com/nsinterior-dev/figment/internal/entity"
	"github.com/nsinterior-dev/figment/internal/pkg/preview"
	"github.com/nsinterior-dev/figment/internal/pkg/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UploadServiceConfig struct {
	PreviewWidth int
	MaxSizeBytes int64
}

type uploadService struct {
	files    storage.FileStorage
	renderer preview.Renderer
	config   *UploadServiceConfig

	mu      sync.Mutex
	uploads map[string]*entity.Upload
}

func NewUploadService(files storage.FileStorage, renderer preview.Renderer, config *UploadServiceConfig) UploadService {
	return &uploadService{
		files:    files,
		renderer: renderer,
		config:   config,
		uploads:  make(map[string]*entity.Upload),
	}
}

// Store validates the file and installs it together with a rendered preview.
// On validation failure nothing changes: any upload named by replacesID is
// left untouched. On success the replaced upload's blob and preview are
// removed after the new one is in place.
func (s *uploadService) Store(file *multipart.FileHeader, replacesID string) (*entity.Upload, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	maxSize := s.config.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, err
	}

	result := ValidateImage(data, int64(len(data)), maxSize)
	if !result.Valid {
		return nil, result.Reason
	}

	id := uuid.New().String()
	up := &entity.Upload{
		ID:          id,
		FileName:    file.Filename,
		ContentType: result.ContentType,
		Size:        int64(len(data)),
		StoragePath: id + "/original",
		PreviewPath: id + "/preview.png",
		CreatedAt:   time.Now(),
	}

	if err := s.files.Save(up.StoragePath, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	thumb, err := s.renderer.Render(bytes.NewReader(data), s.config.PreviewWidth)
	if err != nil {
		s.files.Delete(up.StoragePath)
		return nil, err
	}
	if err := s.files.Save(up.PreviewPath, thumb); err != nil {
		s.files.Delete(up.StoragePath)
		return nil, err
	}

	s.mu.Lock()
	prior := s.uploads[replacesID]
	if prior != nil {
		delete(s.uploads, replacesID)
	}
	s.uploads[id] = up
	s.mu.Unlock()

	if prior != nil {
		s.removeFiles(prior)
	}

	return up, nil
}

func (s *uploadService) Get(id string) (*entity.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.uploads[id]
	if !ok {
		return nil, entity.ErrUploadNotFound
	}
	return up, nil
}

func (s *uploadService) OpenPreview(id string) (io.ReadCloser, error) {
	up, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return s.files.Get(up.PreviewPath)
}

// Clear removes the upload's metadata, blob and preview.
func (s *uploadService) Clear(id string) error {
	s.mu.Lock()
	up, ok := s.uploads[id]
	if ok {
		delete(s.uploads, id)
	}
	s.mu.Unlock()

	if !ok {
		return entity.ErrUploadNotFound
	}
	s.removeFiles(up)
	return nil
}

func (s *uploadService) removeFiles(up *entity.Upload) {
	if err := s.files.Delete(up.StoragePath); err != nil {
		logrus.Warnf("Failed to delete upload %s: %v", up.ID, err)
	}
	if err := s.files.Delete(up.PreviewPath); err != nil {
		logrus.Warnf("Failed to delete preview for upload %s: %v", up.ID, err)
	}
}
