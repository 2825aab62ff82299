package dxl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncReadPresentPosition(t *testing.T) {
	driver, transport, _ := newTestDriver()
	transport.queueResponse(buildStatusFrame(1, 0, []byte{0xA6, 0x00, 0x00, 0x00}))
	transport.queueResponse(buildStatusFrame(2, 0, []byte{0x1F, 0x08, 0x00, 0x00}))

	results, err := driver.SyncRead([]byte{1, 2}, PresentPosition)
	require.Nil(t, err)
	require.Len(t, results, 2)

	want := []byte{0xFF, 0xFF, 0xFD, 0x00, 0xFE, 0x09, 0x00, 0x82, 0x84, 0x00, 0x04, 0x00, 0x01, 0x02, 0xCE, 0xFA}
	assert.Equal(t, want, transport.writtenBytes())

	assert.Equal(t, byte(1), results[0].ID)
	assert.Equal(t, []byte{0xA6, 0x00, 0x00, 0x00}, results[0].Data)
	assert.Equal(t, byte(2), results[1].ID)
	assert.Equal(t, []byte{0x1F, 0x08, 0x00, 0x00}, results[1].Data)
}

func TestSyncReadPartialResultsOnTimeout(t *testing.T) {
	driver, transport, _ := newTestDriver()
	transport.queueResponse(buildStatusFrame(1, 0, []byte{0xA6, 0x00, 0x00, 0x00}))
	// Motor 2 never answers. Its receivePacket call sees an empty buffer
	// and must time out without poisoning motor 1's already-parsed result.

	results, err := driver.SyncRead([]byte{1, 2}, PresentPosition)
	require.Nil(t, err, "SyncRead should succeed with partial results")
	assert.Nil(t, results[0].Err)
	assert.NotNil(t, results[1].Err)
}

func TestSyncReadAllFail(t *testing.T) {
	driver, _, _ := newTestDriver()

	_, err := driver.SyncRead([]byte{1, 2}, PresentPosition)
	require.NotNil(t, err)
	assert.Equal(t, RxFail, err.Code)
}

func TestSyncWriteGoalPosition(t *testing.T) {
	driver, transport, _ := newTestDriver()

	entries := []SyncWriteEntry{
		{ID: 1, Data: []byte{0x96, 0x00, 0x00, 0x00}},
		{ID: 2, Data: []byte{0xAA, 0x00, 0x00, 0x00}},
	}
	require.Nil(t, driver.SyncWrite(entries, GoalPosition))

	want := []byte{
		0xFF, 0xFF, 0xFD, 0x00, 0xFE, 0x11, 0x00, 0x83, 0x74, 0x00, 0x04, 0x00,
		0x01, 0x96, 0x00, 0x00, 0x00, 0x02, 0xAA, 0x00, 0x00, 0x00, 0x82, 0x87,
	}
	assert.Equal(t, want, transport.writtenBytes())
}

func TestSyncWriteRejectsWidthMismatch(t *testing.T) {
	driver, _, _ := newTestDriver()
	entries := []SyncWriteEntry{{ID: 1, Data: []byte{0x96, 0x00}}}
	assert.NotNil(t, driver.SyncWrite(entries, GoalPosition))
}

func TestSyncWriteRejectsEmpty(t *testing.T) {
	driver, _, _ := newTestDriver()
	assert.NotNil(t, driver.SyncWrite(nil, GoalPosition))
}

func TestReadRegisterWidthHelpers(t *testing.T) {
	driver, transport, _ := newTestDriver()
	transport.queueResponse(buildStatusFrame(1, 0, []byte{0x01}))

	val, err := driver.Read1Byte(1, TorqueEnable)
	require.Nil(t, err)
	assert.Equal(t, uint8(1), val)
}

func TestWriteRegisterRejectsWidthMismatch(t *testing.T) {
	driver, _, _ := newTestDriver()
	err := driver.WriteRegister(1, GoalPosition, []byte{0x01})
	require.NotNil(t, err)
	assert.Equal(t, NotAvailable, err.Code)
}

func TestRegWriteAndAction(t *testing.T) {
	driver, transport, _ := newTestDriver()
	transport.queueResponse(buildStatusFrame(1, 0, nil))
	require.Nil(t, driver.RegWrite(1, 0x0074, []byte{0x00, 0x02, 0x00, 0x00}))

	transport.queueResponse(buildStatusFrame(1, 0, nil))
	require.Nil(t, driver.Action(1))
}
