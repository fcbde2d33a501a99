package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 集合键名，与浏览器端本地存储保持一致
const (
	CollectionTests    = "generated_mock_tests"
	CollectionNotes    = "uploaded_notes"
	CollectionProgress = "userProgress"
)

const DefaultMaxUploadSize int64 = 10 * 1024 * 1024

const (
	MimePDF          = "application/pdf"
	MimeWordLegacy   = "application/msword"
	MimeWord         = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeExcelLegacy  = "application/vnd.ms-excel"
	MimeExcel        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimePowerPoint   = "application/vnd.ms-powerpoint"
	MimePowerPointX  = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeOctetStream  = "application/octet-stream"
	MimeTextPlainUTF = "text/plain; charset=utf-8"
)

var AllowedNoteTypes = []string{
	MimePDF,
	MimeWordLegacy,
	MimeWord,
	MimeExcelLegacy,
	MimeExcel,
	MimePowerPoint,
	MimePowerPointX,
}
