package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "Physics Notes", TitleFromFilename("Physics Notes.pdf"))
	assert.Equal(t, "archive.tar", TitleFromFilename("archive.tar.gz"))
	assert.Equal(t, "README", TitleFromFilename("README"))
}

func TestIsAllowedType(t *testing.T) {
	assert.True(t, IsAllowedType("application/pdf", AllowedNoteTypes))
	assert.True(t, IsAllowedType("Application/PDF; name=x", AllowedNoteTypes))
	assert.True(t, IsAllowedType(MimePowerPointX, AllowedNoteTypes))
	assert.False(t, IsAllowedType("application/zip", AllowedNoteTypes))
	assert.False(t, IsAllowedType("", AllowedNoteTypes))
}

func TestDataURL(t *testing.T) {
	url := EncodeDataURL(MimePDF, []byte("%PDF-1.4"))
	assert.Equal(t, "data:application/pdf;base64,JVBERi0xLjQ=", url)

	mimeType, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mimeType)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	_, _, err = DecodeDataURL("not-a-data-url")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
	_, _, err = DecodeDataURL("data:text/plain,hello")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}
