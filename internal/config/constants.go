package config

// Default paths for catalog storage
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./shelf.db"

	// DefaultCatalogJSONPath is used when the catalog is stored as a JSON file
	DefaultCatalogJSONPath = "./catalog.json"
)
