package validation

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "dataprep/internal/errors"
)

var (
	csvExtensions      = []string{".csv", ".txt"}
	workbookExtensions = []string{".xlsx", ".xlsm"}
)

// FileValidator checks job inputs and outputs before any work is done
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks that path exists, is a regular file and can be opened
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewMissingFileError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat file", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError("input path is a directory, not a file").
			WithContext("path", path)
	}

	// Check if file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("file is not readable", err).
			WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateCSVFile validates an input table. An unusual extension is only
// worth a warning since the content decides.
func (v *FileValidator) ValidateCSVFile(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if ext := strings.ToLower(filepath.Ext(path)); !hasExtension(ext, csvExtensions) {
		v.logger.Warn("Input file does not look like CSV",
			slog.String("file", path),
			slog.String("extension", ext))
	}
	return nil
}

// ValidateWorkbookPath checks that path names an XLSX workbook and is not
// an existing directory. The file itself need not exist.
func (v *FileValidator) ValidateWorkbookPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !hasExtension(ext, workbookExtensions) {
		v.logger.Error("Workbook path has unsupported extension",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("workbook must have an .xlsx or .xlsm extension").
			WithContext("path", path).
			WithContext("extension", ext)
	}

	// Check it's not a temp file
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return apperrors.NewAppValidationError("workbook name is reserved for Excel lock files").
			WithContext("path", path)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return apperrors.NewAppValidationError("workbook path is a directory").
			WithContext("path", path)
	}
	return nil
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
