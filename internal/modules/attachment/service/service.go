package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/stepup-fit/stepup-server/pkg/apperror"
	"github.com/stepup-fit/stepup-server/pkg/storage"
)

const maxUploadBytes = 50 << 20 // 50 MiB

var allowedExtensions = map[string]string{
	".webm": "workout-videos",
	".mp4":  "workout-videos",
	".mov":  "workout-videos",
	".jpg":  "avatars",
	".jpeg": "avatars",
	".png":  "avatars",
	".webp": "avatars",
}

type AttachmentService interface {
	// Upload pushes a file to media storage and returns its public URL.
	Upload(ctx context.Context, r io.Reader, fileName string, size int64) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

type attachmentService struct {
	storage storage.MediaStorage
}

func NewAttachmentService(mediaStorage storage.MediaStorage) AttachmentService {
	return &attachmentService{storage: mediaStorage}
}

func (s *attachmentService) Upload(ctx context.Context, r io.Reader, fileName string, size int64) (string, error) {
	if size > maxUploadBytes {
		return "", apperror.New(413, "file exceeds the 50MB upload limit", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	folder, ok := allowedExtensions[ext]
	if !ok {
		return "", apperror.New(400, "unsupported file type", nil)
	}

	url, err := s.storage.UploadMedia(ctx, r, folder, fileName)
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *attachmentService) Delete(ctx context.Context, fileURL string) error {
	return s.storage.DeleteMedia(ctx, fileURL)
}
