package hidhost

import "fmt"

// HIDDevice is the opened-device primitive the worker reads/writes, narrowed
// from github.com/karalabe/hid's Device interface to the two operations
// this worker needs (spec §1 treats host HID transport as an opaque
// collaborator, same framing fwtransport.HID uses on the device side).
type HIDDevice interface {
	// ReadTimeout reads one pending input report into buf within timeoutMS
	// milliseconds, returning 0 if none arrived. A timeout of 0 means
	// non-blocking.
	ReadTimeout(buf []byte, timeoutMS int) (int, error)
	// Write sends one output report.
	Write(buf []byte) (int, error)
	Close() error
}

// DeviceHandle is an enumerated-but-unopened device, narrowed from
// github.com/karalabe/hid's DeviceInfo.
type DeviceHandle struct {
	VendorID  uint16
	ProductID uint16
	Release   uint16
	Serial    string
	Path      string

	open func() (HIDDevice, error)
}

// Open opens the device described by this handle.
func (h DeviceHandle) Open() (HIDDevice, error) {
	return h.open()
}

// DeviceSource enumerates currently attached HID devices. Real code uses
// karalabeSource (karalabe.go); tests substitute a fake.
type DeviceSource interface {
	Enumerate() ([]DeviceHandle, error)
}

// DeviceKey uniquely identifies a physical device across enumeration ticks
// (spec §4.G step 1: "derived from (vid, pid, release, serial-or-path)").
type DeviceKey struct {
	VendorID     uint16
	ProductID    uint16
	Release      uint16
	SerialOrPath string
}

func keyOf(h DeviceHandle) DeviceKey {
	serialOrPath := h.Serial
	if serialOrPath == "" {
		serialOrPath = h.Path
	}
	return DeviceKey{
		VendorID:     h.VendorID,
		ProductID:    h.ProductID,
		Release:      h.Release,
		SerialOrPath: serialOrPath,
	}
}

func (k DeviceKey) String() string {
	return fmt.Sprintf("%04x:%04x:%04x:%s", k.VendorID, k.ProductID, k.Release, k.SerialOrPath)
}
