// Package cleanup removes build and test artifacts produced by delegated tools.
package cleanup

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	removedPathMessageConstant        = "artifact removed"
	cleanupSummaryMessageConstant     = "cleanup completed"
	pathFieldNameConstant             = "path"
	removedCountFieldNameConstant     = "removed_count"
	rootFieldNameConstant             = "root"
	cleanupRootMissingMessageConstant = "cleanup root not provided"
)

// ErrRootMissing indicates the cleanup root directory was not provided.
var ErrRootMissing = errors.New(cleanupRootMissingMessageConstant)

// Configuration lists artifact patterns and protected directories.
type Configuration struct {
	DirectoryPatterns  []string `mapstructure:"directory_patterns"`
	FilePatterns       []string `mapstructure:"file_patterns"`
	ProtectedDirectory string   `mapstructure:"protected_directory"`
}

// DefaultConfiguration returns the artifact patterns for a standard project layout.
func DefaultConfiguration() Configuration {
	return Configuration{
		DirectoryPatterns:  []string{"build", "dist", "reports", ".pytest_cache", ".ruff_cache", "__pycache__"},
		FilePatterns:       []string{"*.pyc", ".coverage"},
		ProtectedDirectory: ".venv",
	}
}

// Service deletes artifact directories and cache files beneath a root directory.
type Service struct {
	logger        *zap.Logger
	configuration Configuration
}

// NewService constructs a cleanup Service with the provided logger and configuration.
func NewService(logger *zap.Logger, configuration Configuration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(configuration.DirectoryPatterns) == 0 && len(configuration.FilePatterns) == 0 {
		configuration = DefaultConfiguration()
	}
	return &Service{logger: logger, configuration: configuration}
}

// Run walks the root directory and removes matching artifacts. Paths beneath
// the protected dependency-environment directory are never touched. Absence of
// matches is not an error; repeated runs succeed.
func (service *Service) Run(rootDirectory string) (int, error) {
	trimmedRoot := strings.TrimSpace(rootDirectory)
	if len(trimmedRoot) == 0 {
		return 0, ErrRootMissing
	}

	removedCount := 0

	walkError := filepath.WalkDir(trimmedRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			// The walk root itself may be absent; treat that as a clean tree.
			if currentPath == trimmedRoot && errors.Is(entryError, fs.ErrNotExist) {
				return nil
			}
			if errors.Is(entryError, fs.ErrNotExist) {
				return nil
			}
			return entryError
		}

		if currentPath == trimmedRoot {
			return nil
		}

		entryName := directoryEntry.Name()

		if directoryEntry.IsDir() {
			if entryName == service.configuration.ProtectedDirectory {
				return fs.SkipDir
			}
			if service.matchesAny(service.configuration.DirectoryPatterns, entryName) {
				if removeError := os.RemoveAll(currentPath); removeError != nil {
					return removeError
				}
				removedCount++
				service.logger.Debug(removedPathMessageConstant, zap.String(pathFieldNameConstant, currentPath))
				return fs.SkipDir
			}
			return nil
		}

		if service.matchesAny(service.configuration.FilePatterns, entryName) {
			if removeError := os.Remove(currentPath); removeError != nil && !errors.Is(removeError, fs.ErrNotExist) {
				return removeError
			}
			removedCount++
			service.logger.Debug(removedPathMessageConstant, zap.String(pathFieldNameConstant, currentPath))
		}

		return nil
	})
	if walkError != nil {
		return removedCount, walkError
	}

	service.logger.Info(cleanupSummaryMessageConstant,
		zap.String(rootFieldNameConstant, trimmedRoot),
		zap.Int(removedCountFieldNameConstant, removedCount),
	)

	return removedCount, nil
}

func (service *Service) matchesAny(patterns []string, candidateName string) bool {
	for _, pattern := range patterns {
		matched, matchError := filepath.Match(pattern, candidateName)
		if matchError != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
