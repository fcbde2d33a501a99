package repository

import (
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
)

type NoteRepository struct {
	*Collection[model.UploadedNote]
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{Collection: NewCollection[model.UploadedNote](util.CollectionNotes)}
}
