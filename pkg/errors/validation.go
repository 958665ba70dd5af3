package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds overlay names and config groups. Names become key
// prefixes in every backend, so anything longer is almost certainly garbage.
const maxNameLength = 128

// ValidateOverlayName checks that name can be used as a configuration key prefix.
//
// The rules keep keys readable in every backend:
//   - No empty names
//   - No control characters or whitespace
//   - No '.' (the separator between group and key in storage keys)
//   - No '=' or ':' (reserved by the properties and Redis key formats)
func ValidateOverlayName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "overlay name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "overlay name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "overlay name contains whitespace or control characters")
		}
	}

	if i := strings.IndexAny(name, ".=:"); i >= 0 {
		return New(ErrCodeInvalidName, "overlay name contains reserved character %q", name[i])
	}

	return nil
}

// ValidateGroup checks a configuration group name.
func ValidateGroup(group string) error {
	if group == "" {
		return New(ErrCodeInvalidInput, "config group cannot be empty")
	}
	if len(group) > maxNameLength {
		return New(ErrCodeInvalidInput, "config group too long (max %d characters)", maxNameLength)
	}
	if strings.ContainsAny(group, ". \t\n") {
		return New(ErrCodeInvalidInput, "config group %q contains '.' or whitespace", group)
	}
	return nil
}

// ValidateAddr validates a host:port address for a network backend.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidConfig, "address cannot be empty")
	}
	i := strings.LastIndex(addr, ":")
	if i <= 0 || i == len(addr)-1 {
		return New(ErrCodeInvalidConfig, "address %q must be host:port", addr)
	}
	return nil
}

// ValidateMongoURI ensures the URI has a MongoDB scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidConfig, "mongo URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidConfig, "mongo URI must use mongodb or mongodb+srv scheme")
	}
	return nil
}
