// Package registryauth resolves package-registry upload credentials from the
// process environment and injects them into delegated uploader invocations.
package registryauth

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvUploaderUsername names the environment variable the uploader reads for its username.
	EnvUploaderUsername = "TWINE_USERNAME"
	// EnvUploaderPassword names the environment variable the uploader reads for its password.
	EnvUploaderPassword = "TWINE_PASSWORD"
	// EnvTestRegistryToken names the credential variable for the test registry.
	EnvTestRegistryToken = "TEST_PYPI_TOKEN"
	// EnvProductionRegistryToken names the credential variable for the production registry.
	EnvProductionRegistryToken = "PROD_PYPI_TOKEN"
	// TokenUsernamePlaceholder is the username registries expect for API-token uploads.
	TokenUsernamePlaceholder = "__token__"

	missingTokenMessageTemplateConstant = "registry token %s is not set (required for %q)"
	missingTokenRemediationConstant     = "define it in the environment or the secrets file"
)

// TokenRequirement states whether a delegated invocation needs a registry token.
type TokenRequirement int

const (
	// TokenRequired aborts the invocation when no token is available.
	TokenRequired TokenRequirement = iota
	// TokenOptional proceeds without credentials when no token is available.
	TokenOptional
)

// MissingTokenError reports an upload attempted without an available registry token.
type MissingTokenError struct {
	TokenVariableName string
	CommandLine       string
}

// Error describes the missing credential and how to supply it.
func (missingError MissingTokenError) Error() string {
	baseMessage := fmt.Sprintf(missingTokenMessageTemplateConstant, missingError.TokenVariableName, missingError.CommandLine)
	return baseMessage + "; " + missingTokenRemediationConstant
}

// NewMissingTokenError constructs a MissingTokenError for the provided variable and command line.
func NewMissingTokenError(tokenVariableName string, commandLine string) MissingTokenError {
	return MissingTokenError{TokenVariableName: tokenVariableName, CommandLine: commandLine}
}

// ResolveToken locates the named token in the supplied environment map, falling back to the process environment.
func ResolveToken(environment map[string]string, tokenVariableName string) (string, bool) {
	trimmedName := strings.TrimSpace(tokenVariableName)
	if len(trimmedName) == 0 {
		return "", false
	}

	if candidate, exists := environment[trimmedName]; exists {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) > 0 {
			return trimmedCandidate, true
		}
	}

	processValue := strings.TrimSpace(os.Getenv(trimmedName))
	if len(processValue) > 0 {
		return processValue, true
	}

	return "", false
}
