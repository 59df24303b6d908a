package drivesim

const (
	DefaultQuotaLimit   = int64(107374182400) // 100 GB
	DefaultMaxUpload    = int64(52428800)     // 50 MB
	DefaultFileSize     = int64(1024)
	FolderMimeType      = "application/vnd.google-apps.folder"
	DefaultFilePageSize = 100
	MaxFilePageSize     = 1000
	DefaultDrivePage    = 10
	MaxDrivePageSize    = 100
)
