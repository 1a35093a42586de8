package hidhost

// DeviceModel describes one known WindowMaster hardware revision: its USB
// identity and the channel count its input/output reports carry.
//
// Grounded in original_source/host-controller/src/manager.rs, which keeps
// a small table of (vid, pid) -> channel count rather than a single
// hardcoded pair (see SPEC_FULL.md §12): a Rev2 board only needs a new row
// here, not a code change.
type DeviceModel struct {
	VendorID    uint16
	ProductID   uint16
	NumChannels int
	Name        string
}

// knownModels is the device-model table. Rev1 is spec §4.G's sole entry
// today.
var knownModels = []DeviceModel{
	{VendorID: 0x1209, ProductID: 0x4573, NumChannels: 6, Name: "WindowMaster Rev1"},
}

// LookupModel returns the DeviceModel matching (vid, pid), if any.
func LookupModel(vendorID, productID uint16) (DeviceModel, bool) {
	for _, m := range knownModels {
		if m.VendorID == vendorID && m.ProductID == productID {
			return m, true
		}
	}
	return DeviceModel{}, false
}
