package domain

import (
	"errors"
	"strings"
	"unicode"
)

// Address is a parsed UMF address: [<instance_id>@]<service_name>[:<path>].
type Address struct {
	InstanceID  InstanceID // empty for service-wide delivery
	ServiceName string
	Path        string // opaque routing hint, without the leading ':'
}

var (
	ErrAddressEmpty           = errors.New("address is empty")
	ErrAddressInstanceMissing = errors.New("instance id before '@' is empty")
	ErrAddressMultipleAt      = errors.New("address contains more than one '@'")
	ErrAddressServiceMissing  = errors.New("service name is empty")
	ErrAddressWhitespace      = errors.New("address contains whitespace")
)

// ParseAddress parses s according to the UMF address grammar.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, ErrAddressEmpty
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return Address{}, ErrAddressWhitespace
	}

	var addr Address
	rest := s
	if at := strings.IndexByte(rest, '@'); at >= 0 {
		if at == 0 {
			return Address{}, ErrAddressInstanceMissing
		}
		addr.InstanceID = InstanceID(rest[:at])
		rest = rest[at+1:]
		if strings.IndexByte(rest, '@') >= 0 {
			return Address{}, ErrAddressMultipleAt
		}
	}

	name, path, _ := strings.Cut(rest, ":")
	if name == "" {
		return Address{}, ErrAddressServiceMissing
	}
	addr.ServiceName = name
	addr.Path = path
	return addr, nil
}

// IsDirect reports whether the address selects exactly one instance.
func (a Address) IsDirect() bool {
	return a.InstanceID != ""
}

// String formats the address back into its wire form.
func (a Address) String() string {
	var b strings.Builder
	if a.InstanceID != "" {
		b.WriteString(string(a.InstanceID))
		b.WriteByte('@')
	}
	b.WriteString(a.ServiceName)
	if a.Path != "" {
		b.WriteByte(':')
		b.WriteString(a.Path)
	}
	return b.String()
}
