package common

const (
	// MaxJSONRequestBody limits JSON request bodies for admin endpoints.
	MaxJSONRequestBody = 1 << 20
	// MaxUploadBytes limits a single image upload to 5MB.
	MaxUploadBytes = 5 << 20
)
