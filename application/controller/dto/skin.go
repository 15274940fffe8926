package dto

// SkinUploadDTO is the image read from the "file" multipart field.
type SkinUploadDTO struct {
	Data     []byte
	FileName string
	MimeType string
}

type FaceHealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	CacheSize int    `json:"cache_size"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
