package applebooks

import "time"

// VendorEpochUnix is 2001-01-01T00:00:00Z expressed as Unix seconds. Apple
// Books (Core Data) stores every timestamp relative to it.
const VendorEpochUnix int64 = 978307200

// ConvertEpoch turns Core Data seconds into an absolute UTC time. Negative
// values are dates before 2001.
func ConvertEpoch(seconds int64) time.Time {
	return time.Unix(VendorEpochUnix+seconds, 0).UTC()
}

// ToEpochSeconds is the inverse of ConvertEpoch.
func ToEpochSeconds(t time.Time) int64 {
	return t.Unix() - VendorEpochUnix
}
