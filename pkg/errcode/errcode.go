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

	// Codebook errors
	CodebookConfigError
	CodebookEmptyError
	CodebookThemeError

	// Response errors
	ResponseInvalidError
	ResponsesReadError
	ResponsesWriteError

	// Generator errors
	GenerateConfigError

	// Coding errors
	CodingInputError

	// Reliability errors
	ReliabilityRateError
	ReliabilityShapeError

	// Export errors
	ExportCSVError
	ExportSQLiteError
	ExportManifestError

	// Report errors
	ReportDataError
	ReportRenderError
)
