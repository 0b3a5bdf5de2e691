package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	UploadHandler  *UploadHandler
	FileHandler    *FileHandler
}
