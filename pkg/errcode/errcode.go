package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	FileNotFoundError

	// Logging errors
	CreateLogFileError

	// Labels and tables
	LabelsParseError
	TableParseError
	TableWriteError
	RecipeConfigError

	// Rebalance
	RebalanceEmptyBucketError

	// Download errors
	DownloadSetupError
	DownloadAuthRefreshError
	DownloadProviderBanError
	DownloadJournalError
	DownloadReportError

	// Corpus helpers
	ESC50FoldError
)
