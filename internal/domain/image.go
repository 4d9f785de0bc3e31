package domain

// StoredImageResult describes an image that was downloaded and re-uploaded.
// StoragePath is always {userId}/{SEOFilename}.
type StoredImageResult struct {
	OriginalURL string `json:"originalUrl"`
	HighResURL  string `json:"highResUrl"`
	StoragePath string `json:"storagePath"`
	PublicURL   string `json:"publicUrl"`
	SEOFilename string `json:"seoFilename"`
	AltText     string `json:"altText"`
}
