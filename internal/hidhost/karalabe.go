package hidhost

import "github.com/karalabe/hid"

// karalabeSource is the real DeviceSource, backed directly by
// github.com/karalabe/hid's platform-agnostic enumerate/open. Only
// WindowMaster's known vendor/product pairs are requested; the library
// itself dispatches to whichever native backend (hidapi via cgo, or the
// pure-Go hidraw backend) the build was compiled with.
type karalabeSource struct{}

// NewKaralabeSource constructs the production DeviceSource.
func NewKaralabeSource() DeviceSource {
	return karalabeSource{}
}

func (karalabeSource) Enumerate() ([]DeviceHandle, error) {
	var handles []DeviceHandle
	for _, m := range knownModels {
		infos, err := hid.Enumerate(m.VendorID, m.ProductID)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			info := info
			handles = append(handles, DeviceHandle{
				VendorID:  info.VendorID,
				ProductID: info.ProductID,
				Release:   info.Release,
				Serial:    info.Serial,
				Path:      info.Path,
				open: func() (HIDDevice, error) {
					return info.Open()
				},
			})
		}
	}
	return handles, nil
}
