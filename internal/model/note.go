package model

// UploadedNote 用户上传的笔记文件
type UploadedNote struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	UploadedAt string `json:"uploadedAt"`
	Content    string `json:"content,omitempty"`
	DataURL    string `json:"dataUrl,omitempty"`
	StorageURL string `json:"storageUrl,omitempty"`
}

func (n UploadedNote) GetID() string {
	return n.ID
}

// NoteSummary 列表展示时不带文件内容
type NoteSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	UploadedAt string `json:"uploadedAt"`
	StorageURL string `json:"storageUrl,omitempty"`
}

func (n UploadedNote) Summary() NoteSummary {
	return NoteSummary{
		ID:         n.ID,
		Title:      n.Title,
		FileName:   n.FileName,
		FileType:   n.FileType,
		FileSize:   n.FileSize,
		UploadedAt: n.UploadedAt,
		StorageURL: n.StorageURL,
	}
}
