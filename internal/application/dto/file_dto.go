package dto

// UploadURLResponse respuesta de POST /api/files/upload-url.
type UploadURLResponse struct {
	StorageID string `json:"storage_id"`
	UploadURL string `json:"upload_url"`
}

// FileURLResponse respuesta de GET /api/files/url. URL es null si el archivo no existe.
type FileURLResponse struct {
	URL *string `json:"url"`
}
