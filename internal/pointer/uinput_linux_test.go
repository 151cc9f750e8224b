//go:build linux

package pointer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvents(t *testing.T, data []byte) []inputEvent {
	t.Helper()
	size := binary.Size(inputEvent{})
	require.Zero(t, len(data)%size, "partial event written")
	events := make([]inputEvent, len(data)/size)
	require.NoError(t, binary.Read(bytes.NewReader(data), binary.NativeEndian, events))
	return events
}

func TestUinputSink_EventStream(t *testing.T) {
	var buf bytes.Buffer
	s := &UinputSink{w: &buf}

	require.NoError(t, s.MoveTo(200, 142))
	require.NoError(t, s.Press())
	require.NoError(t, s.Release())

	got := decodeEvents(t, buf.Bytes())
	want := []struct {
		typ, code uint16
		value     int32
	}{
		{evAbs, absX, 200},
		{evAbs, absY, 142},
		{evSyn, synReport, 0},
		{evKey, btnLeft, 1},
		{evSyn, synReport, 0},
		{evKey, btnLeft, 0},
		{evSyn, synReport, 0},
	}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, got[i].Type, "event %d type", i)
		assert.Equal(t, w.code, got[i].Code, "event %d code", i)
		assert.Equal(t, w.value, got[i].Value, "event %d value", i)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("device gone") }

func TestUinputSink_WriteError(t *testing.T) {
	s := &UinputSink{w: failingWriter{}}
	assert.Error(t, s.Press())
}

func TestUinputSink_CloseWithoutDevice(t *testing.T) {
	s := &UinputSink{w: &bytes.Buffer{}}
	assert.NoError(t, s.Close())
}

func TestNewUserDev(t *testing.T) {
	dev := newUserDev(Geometry{Width: 1920, Height: 1080})

	assert.Equal(t, 1116, binary.Size(dev), "must match struct uinput_user_dev")
	assert.Equal(t, int32(1919), dev.Absmax[absX])
	assert.Equal(t, int32(1079), dev.Absmax[absY])
	assert.Equal(t, int32(0), dev.Absmin[absX])
	assert.Equal(t, deviceName, string(bytes.TrimRight(dev.Name[:], "\x00")))
}

func TestNewUinputSink_MissingDevice(t *testing.T) {
	original := UinputPath
	defer func() { UinputPath = original }()
	UinputPath = t.TempDir() + "/no-uinput"

	_, err := NewUinputSink(Geometry{Width: 10, Height: 10})
	assert.Error(t, err)
}
