package config

import "time"

const (
	// Inference request timeout
	RequestTimeout = 90 * time.Second

	// Speech synthesis timeout (best-effort, shorter than inference)
	SpeechTimeout = 30 * time.Second

	// Medicine catalog fetch timeout
	CatalogTimeout = 30 * time.Second

	// Maximum size accepted for downloaded images and voice notes
	MaxUploadBytes = 20 * 1024 * 1024

	// Canonical greeting every fresh transcript starts with
	Greeting = "Hello! How can I help you today?"

	// Rate limit (messages per minute per chat)
	RateLimitPerMinute = 10

	// Medicines shown per /medicines query
	MaxMedicineResults = 10

	// Jan Aushadhi product list page
	ProductListPath = "/ProductList.aspx"
)
