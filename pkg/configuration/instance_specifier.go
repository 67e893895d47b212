package configuration

import (
	"strings"

	"github.com/lola-ipc/comcfg/pkg/cfgerrors"
)

// InstanceSpecifier is a validated string handle identifying one configured
// service instance. The zero value is invalid; specifiers are only created
// through MakeInstanceSpecifier, so holding one implies the syntax check has
// passed.
//
// The accepted syntax is one or more shortname segments separated by '/',
// each starting with a letter or underscore followed by letters, digits or
// underscores.
type InstanceSpecifier struct {
	value string
}

// MakeInstanceSpecifier validates s and wraps it into an InstanceSpecifier.
func MakeInstanceSpecifier(s string) (InstanceSpecifier, error) {
	if s == "" {
		return InstanceSpecifier{}, cfgerrors.New(cfgerrors.ErrorTypeSemantic, "instance specifier is empty")
	}
	for _, segment := range strings.Split(s, "/") {
		if !validShortname(segment) {
			return InstanceSpecifier{}, cfgerrors.
				New(cfgerrors.ErrorTypeSemantic, "instance specifier contains an invalid shortname segment").
				WithDetail("instance_specifier", s).
				WithDetail("segment", segment)
		}
	}
	return InstanceSpecifier{value: s}, nil
}

func validShortname(segment string) bool {
	if segment == "" {
		return false
	}
	for i, r := range segment {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (i InstanceSpecifier) String() string {
	return i.value
}

// MarshalText lets the specifier serve as a JSON map key.
func (i InstanceSpecifier) MarshalText() ([]byte, error) {
	return []byte(i.value), nil
}
