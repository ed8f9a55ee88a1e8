package model

import (
	"strings"
	"time"
)

// UnknownAddress is stored when the request carries no client address.
const UnknownAddress = "unknown"

// MaxAddressLen is the width of visits.ip_address.
const MaxAddressLen = 45

// Visit represents one recorded page access.  This struct corresponds to
// a row in the `visits` table; rows are never updated or deleted.
//
// Fields:
//
//	ID        – auto-increment primary key assigned by MySQL.
//	Timestamp – time of insertion, second precision.
//	IPAddress – client address or UnknownAddress.
type Visit struct {
	ID        uint64    // visits.id
	Timestamp time.Time // visits.timestamp
	IPAddress string    // visits.ip_address
}

// NormalizeAddress maps an empty address to UnknownAddress and truncates
// anything wider than the column.
func NormalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return UnknownAddress
	}
	if len(addr) > MaxAddressLen {
		addr = addr[:MaxAddressLen]
	}
	return addr
}
