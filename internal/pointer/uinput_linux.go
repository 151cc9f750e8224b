//go:build linux

package pointer

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// UinputPath is the uinput control device.
var UinputPath = "/dev/uinput"

// From linux/uinput.h and linux/input-event-codes.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567

	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00
	btnLeft   = 0x110
	absX      = 0x00
	absY      = 0x01

	busVirtual  = 0x06
	maxNameSize = 80
	absCnt      = 64
)

const deviceName = "touchbridge grid pointer"

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name       [maxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [absCnt]int32
	Absmin     [absCnt]int32
	Absfuzz    [absCnt]int32
	Absflat    [absCnt]int32
}

// inputEvent mirrors struct input_event. The kernel stamps injected events
// itself, so Time is left zero.
type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// UinputSink is a virtual absolute pointer with a left button, created
// through /dev/uinput. Its axis range equals the screen geometry so the
// compositor maps coordinates one to one.
type UinputSink struct {
	mu   sync.Mutex
	w    io.Writer
	file *os.File
}

// NewUinputSink creates the virtual device. It needs write access to
// /dev/uinput.
func NewUinputSink(g Geometry) (*UinputSink, error) {
	f, err := os.OpenFile(UinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", UinputPath, err)
	}
	if err := createDevice(f, g); err != nil {
		f.Close()
		return nil, err
	}
	return &UinputSink{w: f, file: f}, nil
}

func createDevice(f *os.File, g Geometry) error {
	fd := f.Fd()
	for _, bit := range []struct {
		req, arg uintptr
	}{
		{uiSetEvBit, evSyn},
		{uiSetEvBit, evKey},
		{uiSetEvBit, evAbs},
		{uiSetKeyBit, btnLeft},
		{uiSetAbsBit, absX},
		{uiSetAbsBit, absY},
	} {
		if err := ioctl(fd, bit.req, bit.arg); err != nil {
			return fmt.Errorf("uinput ioctl 0x%x(%d) failed: %w", bit.req, bit.arg, err)
		}
	}

	dev := newUserDev(g)
	if err := binary.Write(f, binary.NativeEndian, &dev); err != nil {
		return fmt.Errorf("failed to write uinput device description: %w", err)
	}
	if err := ioctl(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("failed to create uinput device: %w", err)
	}
	return nil
}

func newUserDev(g Geometry) userDev {
	var dev userDev
	copy(dev.Name[:], deviceName)
	dev.ID = inputID{Bustype: busVirtual, Vendor: 0x1209, Product: 0x4854, Version: 1}
	dev.Absmax[absX] = int32(g.Width - 1)
	dev.Absmax[absY] = int32(g.Height - 1)
	return dev
}

func ioctl(fd, req, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

// MoveTo implements Sink.
func (s *UinputSink) MoveTo(x, y int) error {
	return s.emit(
		inputEvent{Type: evAbs, Code: absX, Value: int32(x)},
		inputEvent{Type: evAbs, Code: absY, Value: int32(y)},
	)
}

// Press implements Sink.
func (s *UinputSink) Press() error {
	return s.emit(inputEvent{Type: evKey, Code: btnLeft, Value: 1})
}

// Release implements Sink.
func (s *UinputSink) Release() error {
	return s.emit(inputEvent{Type: evKey, Code: btnLeft, Value: 0})
}

// emit writes events followed by a SYN_REPORT in a single write.
func (s *UinputSink) emit(events ...inputEvent) error {
	var buf bytes.Buffer
	events = append(events, inputEvent{Type: evSyn, Code: synReport})
	if err := binary.Write(&buf, binary.NativeEndian, events); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("uinput write failed: %w", err)
	}
	return nil
}

// Close destroys the virtual device.
func (s *UinputSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	destroyErr := ioctl(s.file.Fd(), uiDevDestroy, 0)
	closeErr := s.file.Close()
	s.file = nil
	if destroyErr != nil {
		return fmt.Errorf("failed to destroy uinput device: %w", destroyErr)
	}
	return closeErr
}
