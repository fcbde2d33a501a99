package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"study_scholar_backend/internal/config"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk unplugged")
}

func newNoteService() (*NoteService, *repository.NoteRepository) {
	repo := repository.NewNoteRepository()
	svc := NewNoteService(repo, nil, util.DefaultMaxUploadSize)
	svc.now = fixedClock("2026-03-10T08:00:00Z")
	return svc, repo
}

func TestNoteIngest_PDF(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, repo := newNoteService()

	content := []byte("%PDF-1.4 sample")
	note, err := svc.Ingest(ctx, scope, NoteUpload{
		FileName:    "Chemistry Chapter 3.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Reader:      bytes.NewReader(content),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Chemistry Chapter 3", note.Title)
	assert.Equal(t, "Chemistry Chapter 3.pdf", note.FileName)
	assert.Equal(t, util.MimePDF, note.FileType)
	assert.Equal(t, int64(len(content)), note.FileSize)
	assert.Equal(t, util.EncodeDataURL(util.MimePDF, content), note.DataURL)
	assert.Equal(t, "2026-03-10T08:00:00Z", note.UploadedAt)

	stored, err := repo.List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, note.ID, stored[0].ID)
}

func TestNoteIngest_RejectsWithoutRecord(t *testing.T) {
	cases := []struct {
		name   string
		upload NoteUpload
	}{
		{
			name: "15 MiB file",
			upload: NoteUpload{
				FileName:    "huge.pdf",
				ContentType: util.MimePDF,
				Size:        15 * 1024 * 1024,
				Reader:      failingReader{},
			},
		},
		{
			name: "zip archive",
			upload: NoteUpload{
				FileName:    "notes.zip",
				ContentType: "application/zip",
				Size:        10,
				Reader:      strings.NewReader("PK.."),
			},
		},
		{
			name: "declared size lies",
			upload: NoteUpload{
				FileName:    "sneaky.docx",
				ContentType: util.MimeWord,
				Size:        1,
				Reader:      bytes.NewReader(make([]byte, util.DefaultMaxUploadSize+1)),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			scope := newScope()
			svc, repo := newNoteService()

			_, err := svc.Ingest(ctx, scope, tc.upload)
			require.Error(t, err)
			assert.True(t, util.IsValidation(err), "expected validation error, got %v", err)

			notes, err := repo.List(ctx, scope)
			require.NoError(t, err)
			assert.Empty(t, notes)
		})
	}
}

func TestNoteIngest_ValidationNamesAllowedTypes(t *testing.T) {
	svc, _ := newNoteService()
	_, err := svc.Ingest(context.Background(), newScope(), NoteUpload{
		FileName: "a.png", ContentType: "image/png", Size: 1, Reader: strings.NewReader("x"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PDF, Word, Excel, PowerPoint")
	assert.Contains(t, err.Error(), util.MimeExcel)
}

func TestNoteIngest_ReadFailure(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, repo := newNoteService()

	_, err := svc.Ingest(ctx, scope, NoteUpload{
		FileName: "slides.ppt", ContentType: util.MimePowerPoint, Size: 100, Reader: failingReader{},
	})
	require.Error(t, err)
	assert.True(t, util.IsIO(err))

	notes, _ := repo.List(ctx, scope)
	assert.Empty(t, notes)
}

func TestNoteService_ListDownloadDelete(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newNoteService()

	content := []byte("sheet-bytes")
	note, err := svc.Ingest(ctx, scope, NoteUpload{
		FileName: "marks.xlsx", ContentType: util.MimeExcel, Size: int64(len(content)), Reader: bytes.NewReader(content),
	})
	require.NoError(t, err)

	summaries, err := svc.List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "marks", summaries[0].Title)

	name, mimeType, data, err := svc.Download(ctx, scope, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "marks.xlsx", name)
	assert.Equal(t, util.MimeExcel, mimeType)
	assert.Equal(t, content, data)

	require.NoError(t, svc.Delete(ctx, scope, note.ID))
	assert.ErrorIs(t, svc.Delete(ctx, scope, note.ID), util.ErrNotFound)
	_, err = svc.Get(ctx, scope, note.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestNoteService_MirrorsToStorage(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	dir := t.TempDir()
	storage := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})
	svc := NewNoteService(repository.NewNoteRepository(), storage, util.DefaultMaxUploadSize)

	note, err := svc.Ingest(ctx, scope, NoteUpload{
		FileName: "Essay.DOC", ContentType: util.MimeWordLegacy, Size: 5, Reader: strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/notes/"+note.ID+".doc", note.StorageURL)

	path := filepath.Join(dir, "notes", note.ID+".doc")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, svc.Delete(ctx, scope, note.ID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNoteService_ConcurrentDeleteSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	scope := newScope()
	svc, _ := newNoteService()

	content := []byte("%PDF-1.4")
	note, err := svc.Ingest(ctx, scope, NoteUpload{
		FileName: "race.pdf", ContentType: util.MimePDF, Size: int64(len(content)), Reader: bytes.NewReader(content),
	})
	require.NoError(t, err)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Delete(ctx, scope, note.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, util.ErrNotFound)
	}
	assert.Equal(t, 1, succeeded)
}
