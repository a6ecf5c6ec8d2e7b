package response

type DocumentUpload struct {
	DocumentId uint   `json:"document_id"`
	StorageKey string `json:"storage_key"`
	UploadUrl  string `json:"upload_url"`
}

type DocumentDownload struct {
	DocumentId  uint   `json:"document_id"`
	DownloadUrl string `json:"download_url"`
	ShareToken  string `json:"share_token"`
}

type Transcript struct {
	DocumentId uint   `json:"document_id"`
	Transcript string `json:"transcript"`
}
