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

	// Logging errors
	CreateLogFileError

	// Datasets errors
	DatasetsConfigError
	DatasetsNotFoundError

	// Fetch errors
	FetchRequestError
	FetchStatusError
	FetchDecodeError
	FetchSaveError
	FetchCacheError

	// Extract errors
	ExtractReadDirError
	ExtractDecodeError

	// Cluster errors
	ClusterToolNotFoundError
	ClusterToolFailedError
	ClusterOutputMissingError
	ClusterTableReadError

	// Align errors
	AlignToolNotFoundError
	AlignToolFailedError
	AlignOutputMissingError
	TrimToolNotFoundError
	TrimToolFailedError
	TrimOutputMissingError

	// Write errors
	WriteJSONError
	WriteTSVError
	WriteFASTAError

	// Run errors
	RunCancelledError
)
