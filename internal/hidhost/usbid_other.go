//go:build !linux

package hidhost

// describeUnknown has no USB ID database to consult outside Linux; callers
// fall back to the raw hex vendor/product pair.
func describeUnknown(vendorID, productID uint16) string {
	return ""
}
