package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/logger"
	"study_scholar_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// NoteUpload 上传文件的描述，Reader 只会被读取一次
type NoteUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type NoteService struct {
	repo    *repository.NoteRepository
	storage *StorageService
	maxSize int64
	now     func() time.Time
}

// NewNoteService storage 为 nil 时不做镜像存储
func NewNoteService(repo *repository.NoteRepository, storage *StorageService, maxSize int64) *NoteService {
	if maxSize <= 0 {
		maxSize = util.DefaultMaxUploadSize
	}
	return &NoteService{repo: repo, storage: storage, maxSize: maxSize, now: time.Now}
}

func allowedTypesMessage() string {
	return "unsupported file type; allowed types: PDF, Word, Excel, PowerPoint (" +
		strings.Join(util.AllowedNoteTypes, ", ") + ")"
}

func (s *NoteService) validate(upload NoteUpload) error {
	if !util.IsAllowedType(upload.ContentType, util.AllowedNoteTypes) {
		return util.NewValidationError("file", "%s", allowedTypesMessage())
	}
	if upload.Size > s.maxSize {
		return util.NewValidationError("file", "file size %d exceeds limit of %d bytes", upload.Size, s.maxSize)
	}
	return nil
}

func (s *NoteService) Ingest(ctx context.Context, scope *repository.Scope, upload NoteUpload) (*model.UploadedNote, error) {
	note, err := s.ingest(ctx, scope, upload)
	switch {
	case err == nil:
		monitoring.NotesIngested.WithLabelValues(monitoring.OutcomeSuccess).Inc()
	case util.IsValidation(err):
		monitoring.NotesIngested.WithLabelValues(monitoring.OutcomeValidation).Inc()
	default:
		monitoring.NotesIngested.WithLabelValues(monitoring.OutcomeFailure).Inc()
	}
	return note, err
}

func (s *NoteService) ingest(ctx context.Context, scope *repository.Scope, upload NoteUpload) (*model.UploadedNote, error) {
	if err := s.validate(upload); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.maxSize+1))
	if err != nil {
		return nil, &util.IOError{Op: "read file", Err: err}
	}
	if int64(len(data)) > s.maxSize {
		return nil, util.NewValidationError("file", "file size exceeds limit of %d bytes", s.maxSize)
	}

	mimeType := util.NormalizeMimeType(upload.ContentType)
	note := model.UploadedNote{
		ID:         util.NewID(),
		Title:      util.TitleFromFilename(upload.FileName),
		FileName:   upload.FileName,
		FileType:   mimeType,
		FileSize:   int64(len(data)),
		UploadedAt: s.now().UTC().Format(time.RFC3339Nano),
		DataURL:    util.EncodeDataURL(mimeType, data),
	}

	if s.storage != nil {
		url, err := s.storage.Upload(ctx, blobKey(note), bytes.NewReader(data), note.FileSize, mimeType)
		if err != nil {
			return nil, &util.IOError{Op: "store file", Err: err}
		}
		note.StorageURL = url
	}

	if err := s.repo.Append(ctx, scope, note); err != nil {
		if s.storage != nil {
			if derr := s.storage.Delete(ctx, blobKey(note)); derr != nil {
				logger.Log.Warn("failed to roll back stored note file", zap.String("id", note.ID), zap.Error(derr))
			}
		}
		return nil, err
	}

	logger.Log.Info("note uploaded",
		zap.String("device", scope.DeviceID),
		zap.String("id", note.ID),
		zap.String("type", note.FileType),
		zap.Int64("size", note.FileSize))
	return &note, nil
}

func blobKey(note model.UploadedNote) string {
	return fmt.Sprintf("notes/%s%s", note.ID, strings.ToLower(filepath.Ext(note.FileName)))
}

func (s *NoteService) List(ctx context.Context, scope *repository.Scope) ([]model.NoteSummary, error) {
	notes, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]model.NoteSummary, len(notes))
	for i, n := range notes {
		out[i] = n.Summary()
	}
	return out, nil
}

func (s *NoteService) Get(ctx context.Context, scope *repository.Scope, id string) (*model.UploadedNote, error) {
	return s.repo.Find(ctx, scope, id)
}

func (s *NoteService) Delete(ctx context.Context, scope *repository.Scope, id string) error {
	note, err := s.repo.Find(ctx, scope, id)
	if err != nil {
		return err
	}
	removed, err := s.repo.Remove(ctx, scope, id)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrNotFound
	}
	if s.storage != nil && note.StorageURL != "" {
		if err := s.storage.Delete(ctx, blobKey(*note)); err != nil {
			logger.Log.Warn("failed to delete stored note file", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

// Download 解码 data URL，返回文件名、MIME 类型和内容
func (s *NoteService) Download(ctx context.Context, scope *repository.Scope, id string) (string, string, []byte, error) {
	note, err := s.repo.Find(ctx, scope, id)
	if err != nil {
		return "", "", nil, err
	}
	if note.DataURL == "" {
		if note.Content != "" {
			return note.FileName, util.MimeTextPlainUTF, []byte(note.Content), nil
		}
		return "", "", nil, util.ErrNotFound
	}
	mimeType, data, err := util.DecodeDataURL(note.DataURL)
	if err != nil {
		return "", "", nil, &util.IOError{Op: "decode note", Err: err}
	}
	return note.FileName, mimeType, data, nil
}
