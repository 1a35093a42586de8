//go:build linux

package hidhost

import "github.com/agausmann/windowmaster/pkg/linux/usbid"

var usbidDB = usbid.New()

// describeUnknown returns a human-readable "vendor product" string for a
// vid/pid pair that didn't match any entry in knownModels, looked up from
// the system's USB ID database. Returns "" if the database isn't available
// or has no entry, in which case callers fall back to the raw hex pair.
func describeUnknown(vendorID, productID uint16) string {
	if !usbidDB.IsLoaded() && !usbidDB.Load() {
		return ""
	}
	vendor := usbidDB.LookupVendor(vendorID)
	if vendor == "" {
		return ""
	}
	if product := usbidDB.LookupProduct(vendorID, productID); product != "" {
		return vendor + " " + product
	}
	return vendor
}
