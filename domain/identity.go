package domain

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/minio/sha256-simd"
)

// instanceIDLength is the number of hex characters kept from the digest.
const instanceIDLength = 32

// DeriveInstanceID computes the stable identifier of the instance described by d.
// Only service name, host and port take part, so the same process restarted on the same
// address reclaims the same identity. The digest is SHA-256 of "<service_name>|<host>|<port>",
// hex encoded and truncated to 32 characters.
func DeriveInstanceID(d ServiceDescriptor) InstanceID {
	var b strings.Builder
	b.WriteString(d.ServiceName)
	b.WriteByte('|')
	b.WriteString(d.Host)
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(d.Port))

	sum := sha256.Sum256([]byte(b.String()))
	return InstanceID(hex.EncodeToString(sum[:])[:instanceIDLength])
}
