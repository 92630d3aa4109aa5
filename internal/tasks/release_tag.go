package tasks

import (
	"fmt"

	"golang.org/x/mod/semver"
)

const invalidReleaseTagTemplateConstant = "invalid release version %s: expected a canonical semantic version such as v1.2.3"

// InvalidReleaseTagError reports a release version that is not a canonical
// semantic version tag.
type InvalidReleaseTagError struct {
	Tag string
}

// Error describes the rejected tag.
func (tagError *InvalidReleaseTagError) Error() string {
	return fmt.Sprintf(invalidReleaseTagTemplateConstant, tagError.Tag)
}

// ValidateReleaseTag accepts canonical semantic version tags with a leading v.
func ValidateReleaseTag(candidateTag string) error {
	if !semver.IsValid(candidateTag) {
		return &InvalidReleaseTagError{Tag: candidateTag}
	}
	if semver.Canonical(candidateTag) != candidateTag {
		return &InvalidReleaseTagError{Tag: candidateTag}
	}
	return nil
}
