// Package envfile loads optional secrets files of KEY=VALUE lines so delegated
// tools can inherit upload credentials without exporting them globally.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const (
	environmentFileMissingMessageConstant = "environment file not found"
	environmentFileReadErrorTemplate      = "unable to read environment file %s: %w"
	commentLinePrefixConstant             = "#"
	keyValueSeparatorConstant             = "="
	lineBreakConstant                     = "\n"
	carriageReturnConstant                = "\r"
)

// ErrEnvironmentFileMissing indicates the optional environment file is absent.
// Callers treat this as a soft failure and continue without secrets.
var ErrEnvironmentFileMissing = errors.New(environmentFileMissingMessageConstant)

// EnvironmentFileMissingError carries the path of the absent environment file.
type EnvironmentFileMissingError struct {
	Path string
}

// Error describes the absent file.
func (missingError EnvironmentFileMissingError) Error() string {
	return fmt.Sprintf("%s: %s", environmentFileMissingMessageConstant, missingError.Path)
}

// Unwrap exposes the soft-failure sentinel.
func (missingError EnvironmentFileMissingError) Unwrap() error {
	return ErrEnvironmentFileMissing
}

// Loader parses environment files into key-value entries.
type Loader struct{}

// NewLoader constructs a Loader instance.
func NewLoader() Loader {
	return Loader{}
}

// Load reads the environment file at the provided path and returns its entries
// keyed by name; a key repeated on a later line overrides the earlier value.
// Blank lines and lines starting with '#' are skipped. A line without '='
// becomes a key with an empty value; values are kept verbatim with no quote
// handling.
func (loader Loader) Load(environmentFilePath string) (map[string]string, error) {
	fileContent, readError := os.ReadFile(environmentFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, EnvironmentFileMissingError{Path: environmentFilePath}
		}
		return nil, fmt.Errorf(environmentFileReadErrorTemplate, environmentFilePath, readError)
	}

	return loader.parse(string(fileContent)), nil
}

func (loader Loader) parse(fileContent string) map[string]string {
	entries := map[string]string{}

	for _, rawLine := range strings.Split(fileContent, lineBreakConstant) {
		line := strings.TrimSuffix(rawLine, carriageReturnConstant)
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, commentLinePrefixConstant) {
			continue
		}

		key, value, separatorFound := strings.Cut(trimmedLine, keyValueSeparatorConstant)
		if !separatorFound {
			entries[trimmedLine] = ""
			continue
		}
		entries[key] = value
	}

	return entries
}
