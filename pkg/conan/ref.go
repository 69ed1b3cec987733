// Package conan provides the domain types shared across the Conan UI:
// recipe references, version ordering, binary filters, and the REST
// response shapes served by the API and consumed by its clients.
//
// Conan references follow the format name/version@user/channel, where
// user and channel are optional. A reference may additionally carry a
// recipe revision after a '#' separator.
package conan

import (
	"fmt"
	"strings"

	"github.com/roknus/conan-ui/pkg/errors"
)

// RecipeRef identifies a recipe on a remote.
// User, Channel, and Revision may be empty.
type RecipeRef struct {
	Name     string
	Version  string
	User     string
	Channel  string
	Revision string
}

// String renders the reference in canonical form:
// name/version[@user[/channel]][#revision].
func (r RecipeRef) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte('/')
	b.WriteString(r.Version)
	if r.User != "" {
		b.WriteByte('@')
		b.WriteString(r.User)
		if r.Channel != "" {
			b.WriteByte('/')
			b.WriteString(r.Channel)
		}
	}
	if r.Revision != "" {
		b.WriteByte('#')
		b.WriteString(r.Revision)
	}
	return b.String()
}

// PkgRefString renders the full package reference for a binary:
// name/version[@user/channel]#revision:package_id.
func (r RecipeRef) PkgRefString(packageID string) string {
	return r.String() + ":" + packageID
}

// WithRevision returns a copy of the reference with the revision set.
func (r RecipeRef) WithRevision(revision string) RecipeRef {
	r.Revision = revision
	return r
}

// WithoutRevision returns a copy of the reference with the revision
// cleared. Response paths use this form: conan prints references without
// their revision.
func (r RecipeRef) WithoutRevision() RecipeRef {
	r.Revision = ""
	return r
}

// PathUser returns the user segment for REST paths, using the "_"
// placeholder for references without a user.
func (r RecipeRef) PathUser() string {
	if r.User == "" {
		return "_"
	}
	return r.User
}

// PathChannel returns the channel segment for REST paths, using the "_"
// placeholder for references without a channel.
func (r RecipeRef) PathChannel() string {
	if r.Channel == "" {
		return "_"
	}
	return r.Channel
}

// ParseRecipeRef parses a reference string of the form
// name/version[@user[/channel]][#revision].
func ParseRecipeRef(s string) (RecipeRef, error) {
	var ref RecipeRef

	rest := strings.TrimSpace(s)
	if rest == "" {
		return ref, errors.New(errors.ErrCodeInvalidReference, "empty reference")
	}

	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		ref.Revision = rest[idx+1:]
		rest = rest[:idx]
	}

	if idx := strings.IndexByte(rest, '@'); idx >= 0 {
		scope := rest[idx+1:]
		rest = rest[:idx]
		if scope != "" {
			parts := strings.SplitN(scope, "/", 2)
			ref.User = parts[0]
			if len(parts) == 2 {
				ref.Channel = parts[1]
			}
		}
	}

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RecipeRef{}, errors.New(errors.ErrCodeInvalidReference, "invalid reference %q: expected name/version", s)
	}
	ref.Name = parts[0]
	ref.Version = parts[1]

	if strings.Contains(ref.Version, "/") {
		return RecipeRef{}, errors.New(errors.ErrCodeInvalidReference, "invalid reference %q: unexpected path segment", s)
	}

	return ref, nil
}

// MustParseRecipeRef parses a reference string and panics on error.
// Intended for tests and compile-time constants.
func MustParseRecipeRef(s string) RecipeRef {
	ref, err := ParseRecipeRef(s)
	if err != nil {
		panic(fmt.Sprintf("conan: %v", err))
	}
	return ref
}
