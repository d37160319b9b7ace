// Package constants provides shared constants used throughout bomtally.
// This includes file permissions, export file names, server defaults and
// other values that should be consistent across the CLI and the HTTP API.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Export constants name the two report tables and their CSV files.
const (
	// UnmatchedFileName is the default file name of the unmatched-codes export
	UnmatchedFileName = "codigos_nao_encontrados.csv"

	// TotalsFileName is the default file name of the material totals export
	TotalsFileName = "resumo_materiais.csv"

	// UnmatchedHeader is the single column header of the unmatched-codes table
	UnmatchedHeader = "Códigos Não Encontrados no Excel"

	// MaterialHeader is the material code column header of the totals table
	MaterialHeader = "Código Material"

	// QuantityHeader is the quantity column header of the totals table
	QuantityHeader = "Quantidade Total"
)

// Server defaults
const (
	// DefaultHost is the address the API server binds to
	DefaultHost = "localhost"

	// DefaultPort is the port the API server listens on
	DefaultPort = 8080

	// DefaultPathPrefix is the API route prefix
	DefaultPathPrefix = "/api/v1"

	// ResultTTL is how long a reconciliation run stays downloadable
	ResultTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired runs
	CacheCleanupInterval = 5 * time.Minute

	// MaxUploadMB bounds the multipart body of a reconcile request
	MaxUploadMB = 32

	// DefaultRateLimit is the number of reconcile requests allowed per minute per client
	DefaultRateLimit = 60

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second
)

// Input defaults
const (
	// DefaultDelimiter separates fields of the count report
	DefaultDelimiter = ","

	// DefaultPreviewRows is the number of rows shown by inspect
	DefaultPreviewRows = 5
)

// Config constants
const (
	// ConfigName is the config file name searched in $HOME and the working directory
	ConfigName = ".bomtally"

	// EnvPrefix prefixes every environment variable read through viper
	EnvPrefix = "BOMTALLY"
)
