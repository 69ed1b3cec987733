package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Conan-specific validation should be done separately via [ValidateConanName].
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// conanNameRegex matches valid Conan package names: 2-101 characters,
// starting with a letter, digit, or underscore.
var conanNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]{1,100}$`)

// ValidateConanName validates a Conan package name.
func ValidateConanName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !conanNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Conan package name: %q", name)
	}

	return nil
}

// conanVersionRegex matches valid Conan version strings.
// Versions share the reference charset but may be a single character.
var conanVersionRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_+.-]{0,100}$`)

// ValidateConanVersion validates a Conan package version string.
func ValidateConanVersion(version string) error {
	if err := ValidatePackageName(version); err != nil {
		return New(ErrCodeInvalidReference, "invalid version: %s", UserMessage(err))
	}

	if !conanVersionRegex.MatchString(version) {
		return New(ErrCodeInvalidReference, "invalid Conan version: %q", version)
	}

	return nil
}

// ValidateUserChannel validates a Conan user or channel segment.
// Empty is valid: unscoped references have neither user nor channel.
func ValidateUserChannel(segment string) error {
	if segment == "" {
		return nil
	}

	if !conanNameRegex.MatchString(segment) {
		return New(ErrCodeInvalidReference, "invalid user/channel segment: %q", segment)
	}

	return nil
}

// remoteNameRegex matches valid remote names.
var remoteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.-]*$`)

// ValidateRemoteName validates a configured remote name.
func ValidateRemoteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRemote, "remote name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidRemote, "remote name too long (max 64 characters)")
	}

	if !remoteNameRegex.MatchString(name) {
		return New(ErrCodeInvalidRemote, "invalid remote name: %q", name)
	}

	return nil
}

// packageIDRegex matches Conan package IDs (hex digests).
var packageIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{4,64}$`)

// ValidatePackageID validates a Conan package ID.
// Package IDs are hex digests of the settings/options configuration.
func ValidatePackageID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "package_id cannot be empty")
	}

	if !packageIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid package ID: %q", id)
	}

	return nil
}

// revisionRegex matches recipe and package revisions (hex digests).
var revisionRegex = regexp.MustCompile(`^[a-fA-F0-9]{4,64}$`)

// ValidateRevision validates a recipe or package revision.
// Empty is valid: an unset revision means "latest".
func ValidateRevision(rev string) error {
	if rev == "" {
		return nil
	}

	if !revisionRegex.MatchString(rev) {
		return New(ErrCodeInvalidReference, "invalid revision: %q", rev)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
