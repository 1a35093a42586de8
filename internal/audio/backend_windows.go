//go:build windows

package audio

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/agausmann/windowmaster/internal/wmid"
)

// Windows COM bindings for the default render endpoint's volume/mute
// state, grounded directly in the ctrldeck example's volume_windows.go
// (same ole32.dll procs, same vtable-index call pattern, same GUIDs), but
// loaded through golang.org/x/sys/windows the way witnessd's
// internal/hardware/hello_windows.go loads its own DLLs
// (windows.NewLazySystemDLL + windows.GUID) rather than bare syscall,
// since x/sys/windows is already this repo's Windows syscall layer.
// Extended with a poll loop so state changes made by *other* applications
// (spec §4.H "notifications may arrive on callback threads") reach the
// adapter instead of only our own writes.
var (
	modOle32             = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeEx   = modOle32.NewProc("CoInitializeEx")
	procCoUninitialize   = modOle32.NewProc("CoUninitialize")
	procCoCreateInstance = modOle32.NewProc("CoCreateInstance")
)

var (
	clsidMMDeviceEnumerator = windows.GUID{
		Data1: 0xBCDE0395, Data2: 0xE52F, Data3: 0x467C,
		Data4: [8]byte{0x8E, 0x3D, 0xC4, 0x57, 0x92, 0x91, 0x69, 0x2E},
	}
	iidIMMDeviceEnumerator = windows.GUID{
		Data1: 0xA95664D2, Data2: 0x9614, Data3: 0x4F35,
		Data4: [8]byte{0xA7, 0x46, 0xDE, 0x8D, 0xB6, 0x36, 0x17, 0xE6},
	}
	iidIAudioEndpointVolume = windows.GUID{
		Data1: 0x5CDF2C82, Data2: 0x841E, Data3: 0x4546,
		Data4: [8]byte{0x97, 0x22, 0x0C, 0xF7, 0x40, 0x78, 0x22, 0x9A},
	}
)

const (
	eRender             = 0
	eMultimedia         = 1
	coinitMultithreaded = 0x0
	clsctxInprocServer  = 0x1
)

// endpointVolume index layout within IAudioEndpointVolume's vtable (from
// the Windows Core Audio IDL, same indices the ctrldeck backend hardcodes).
const (
	vtblSetMasterVolumeLevelScalar = 7
	vtblGetMasterVolumeLevelScalar = 9
	vtblSetMute                    = 13
	vtblGetMute                    = 14
)

// endpointPollInterval is how often Run re-reads the endpoint's
// volume/mute state to detect changes made by other applications.
const endpointPollInterval = 500 * time.Millisecond

// openDefaultEndpointVolume walks MMDeviceEnumerator -> default render
// device -> IAudioEndpointVolume, returning the activated interface
// pointer. Each call re-initializes COM, matching the ctrldeck reference's
// per-call CoInitializeEx/CoUninitialize pairing rather than holding COM
// initialized for the process lifetime.
func openDefaultEndpointVolume() (*uintptr, error) {
	hr, _, _ := procCoInitializeEx.Call(0, coinitMultithreaded)
	if hr != 0 && hr != 1 && hr != 0x80010106 {
		return nil, syscall.Errno(hr)
	}

	var enumerator *uintptr
	hr, _, _ = syscall.SyscallN(
		procCoCreateInstance.Addr(),
		uintptr(unsafe.Pointer(&clsidMMDeviceEnumerator)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(&iidIMMDeviceEnumerator)),
		uintptr(unsafe.Pointer(&enumerator)),
	)
	if hr != 0 {
		return nil, syscall.Errno(hr)
	}

	var device *uintptr
	enumVtbl := *(**[8]uintptr)(unsafe.Pointer(enumerator))
	hr, _, _ = syscall.SyscallN(
		enumVtbl[4], // GetDefaultAudioEndpoint
		uintptr(unsafe.Pointer(enumerator)),
		eRender,
		eMultimedia,
		uintptr(unsafe.Pointer(&device)),
	)
	if hr != 0 {
		return nil, syscall.Errno(hr)
	}

	var endpointVolume *uintptr
	deviceVtbl := *(**[8]uintptr)(unsafe.Pointer(device))
	hr, _, _ = syscall.SyscallN(
		deviceVtbl[3], // Activate
		uintptr(unsafe.Pointer(device)),
		uintptr(unsafe.Pointer(&iidIAudioEndpointVolume)),
		clsctxInprocServer,
		0,
		uintptr(unsafe.Pointer(&endpointVolume)),
	)
	if hr != 0 {
		return nil, syscall.Errno(hr)
	}
	return endpointVolume, nil
}

func setMasterVolumeScalar(level float64) error {
	ep, err := openDefaultEndpointVolume()
	if err != nil {
		return err
	}
	defer procCoUninitialize.Call()

	vtbl := *(**[16]uintptr)(unsafe.Pointer(ep))
	volume := float32(level)
	hr, _, _ := syscall.SyscallN(
		vtbl[vtblSetMasterVolumeLevelScalar],
		uintptr(unsafe.Pointer(ep)),
		uintptr(*(*uint32)(unsafe.Pointer(&volume))),
		0,
	)
	if hr != 0 {
		return syscall.Errno(hr)
	}
	return nil
}

func getMasterVolumeScalar() (float64, error) {
	ep, err := openDefaultEndpointVolume()
	if err != nil {
		return 0, err
	}
	defer procCoUninitialize.Call()

	vtbl := *(**[16]uintptr)(unsafe.Pointer(ep))
	var volume float32
	hr, _, _ := syscall.SyscallN(
		vtbl[vtblGetMasterVolumeLevelScalar],
		uintptr(unsafe.Pointer(ep)),
		uintptr(unsafe.Pointer(&volume)),
	)
	if hr != 0 {
		return 0, syscall.Errno(hr)
	}
	return float64(volume), nil
}

func setMute(mute bool) error {
	ep, err := openDefaultEndpointVolume()
	if err != nil {
		return err
	}
	defer procCoUninitialize.Call()

	vtbl := *(**[16]uintptr)(unsafe.Pointer(ep))
	var muteVal uintptr
	if mute {
		muteVal = 1
	}
	hr, _, _ := syscall.SyscallN(
		vtbl[vtblSetMute],
		uintptr(unsafe.Pointer(ep)),
		muteVal,
		0,
	)
	if hr != 0 {
		return syscall.Errno(hr)
	}
	return nil
}

func getMute() (bool, error) {
	ep, err := openDefaultEndpointVolume()
	if err != nil {
		return false, err
	}
	defer procCoUninitialize.Call()

	vtbl := *(**[16]uintptr)(unsafe.Pointer(ep))
	var muted int32
	hr, _, _ := syscall.SyscallN(
		vtbl[vtblGetMute],
		uintptr(unsafe.Pointer(ep)),
		uintptr(unsafe.Pointer(&muted)),
	)
	if hr != 0 {
		return false, syscall.Errno(hr)
	}
	return muted != 0, nil
}

// WindowsBackend is the Core Audio backend. It models exactly one stream:
// the default render device's master endpoint volume, since a minimal COM
// binding without a live session enumerator cannot discover per-application
// sessions. No per-application StreamOpened/StreamClosed events are emitted,
// and WindowFocusChanged/DefaultDeviceChanged are never emitted.
type WindowsBackend struct {
	mu       sync.Mutex
	streamId wmid.StreamId
}

// NewWindowsBackend constructs the Windows Core Audio backend.
func NewWindowsBackend() *WindowsBackend {
	return &WindowsBackend{streamId: wmid.NextStreamId()}
}

// Run announces the single default-device stream and then polls its
// volume/mute state once per tick, synthesizing StreamEvent::StateChanged
// when it differs from what we last reported. Polling rather than
// registering IAudioEndpointVolumeCallback keeps this binding's unsafe
// surface to the same vtable-call shape as the reference.
func (b *WindowsBackend) Run(ctx context.Context, emit func(Event)) error {
	initial, err := b.currentState()
	if err != nil {
		return fmt.Errorf("audio: initial endpoint query: %w", err)
	}
	emit(StreamOpened(b.streamId, wmid.StreamInfo{
		Name:         "Default Output Device",
		InitialState: initial,
	}))

	last := initial
	ticker := time.NewTicker(endpointPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			emit(StreamClosed(b.streamId))
			return ctx.Err()
		case <-ticker.C:
			state, err := b.currentState()
			if err != nil {
				continue
			}
			if state != last {
				last = state
				emit(StreamStateChanged(b.streamId, state))
			}
		}
	}
}

func (b *WindowsBackend) currentState() (wmid.StreamState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	volume, err := getMasterVolumeScalar()
	if err != nil {
		return wmid.StreamState{}, err
	}
	muted, err := getMute()
	if err != nil {
		return wmid.StreamState{}, err
	}
	return wmid.StreamState{Volume: volume, Muted: muted}.Clamp(), nil
}

// Dispatch applies a StreamControl to the default render endpoint.
func (b *WindowsBackend) Dispatch(control StreamControl) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch control.Kind {
	case ControlSetVolume:
		return setMasterVolumeScalar(wmid.StreamState{Volume: control.Volume}.Clamp().Volume)
	case ControlStepVolume:
		current, err := getMasterVolumeScalar()
		if err != nil {
			return err
		}
		next := wmid.StreamState{Volume: current + float64(control.Steps)*VolumeStepSize}.Clamp()
		return setMasterVolumeScalar(next.Volume)
	case ControlSetMuted:
		return setMute(control.Muted)
	case ControlToggleMuted:
		muted, err := getMute()
		if err != nil {
			return err
		}
		return setMute(!muted)
	default:
		return fmt.Errorf("audio: unknown control kind %d", control.Kind)
	}
}
