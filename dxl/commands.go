package dxl

// Ping sends Ping to id and returns the servo's reported model number and
// firmware version.
func (d *Driver) Ping(id byte) (modelNumber uint16, firmwareVersion byte, err *CommError) {
	if err = d.enter(); err != nil {
		return
	}
	defer d.leave()

	BuildFrame(&d.buildBuf, id, InstPing, nil)
	d.sendPacket(&d.buildBuf)

	status, rxErr := d.receivePacket()
	if rxErr != nil {
		return 0, 0, rxErr
	}
	if status.ID != id {
		return 0, 0, newErr(SomethingWentWrong, "ping id mismatch: got %d want %d", status.ID, id)
	}
	if status.Error != ErrNone {
		return 0, 0, newErr(SomethingWentWrong, "ping error byte %d", status.Error)
	}
	if len(status.Params) != 3 {
		return 0, 0, newErr(SomethingWentWrong, "ping expected 3 params, got %d", len(status.Params))
	}
	modelNumber = uint16(status.Params[0]) | uint16(status.Params[1])<<8
	firmwareVersion = status.Params[2]
	return modelNumber, firmwareVersion, nil
}

// Read sends Read for address/width bytes from id and returns the raw
// payload. id must not be BroadcastID: a broadcast read has no single
// respondent and is rejected outright.
func (d *Driver) Read(id byte, address uint16, width uint16) ([]byte, *CommError) {
	if id >= BroadcastID {
		return nil, newErr(NotAvailable, "read against broadcast id is invalid")
	}
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	var params [4]byte
	params[0] = byte(address)
	params[1] = byte(address >> 8)
	params[2] = byte(width)
	params[3] = byte(width >> 8)

	BuildFrame(&d.buildBuf, id, InstRead, params[:])
	d.sendPacket(&d.buildBuf)

	status, err := d.receivePacket()
	if err != nil {
		return nil, err
	}
	if status.ID != id {
		return nil, newErr(SomethingWentWrong, "read id mismatch: got %d want %d", status.ID, id)
	}
	if status.Error != ErrNone {
		return nil, newErr(SomethingWentWrong, "read error byte %d", status.Error)
	}
	if uint16(len(status.Params)) != width {
		return nil, newErr(SomethingWentWrong, "read expected %d params, got %d", width, len(status.Params))
	}
	out := make([]byte, len(status.Params))
	copy(out, status.Params)
	return out, nil
}

// Write sends Write of data to address on id. For id == BroadcastID the
// write is one-way: no status response is awaited.
func (d *Driver) Write(id byte, address uint16, data []byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	params := make([]byte, 2+len(data))
	params[0] = byte(address)
	params[1] = byte(address >> 8)
	copy(params[2:], data)

	BuildFrame(&d.buildBuf, id, InstWrite, params)
	d.sendPacket(&d.buildBuf)

	if id == BroadcastID {
		return nil
	}

	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.ID != id {
		return newErr(SomethingWentWrong, "write id mismatch: got %d want %d", status.ID, id)
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "write error byte %d", status.Error)
	}
	return nil
}

// ReadRegister reads a named control-table register and returns its raw
// wire-width bytes.
func (d *Driver) ReadRegister(id byte, name Name) ([]byte, *CommError) {
	return d.Read(id, Address(name), uint16(Width(name)))
}

// WriteRegister writes data to a named control-table register. data's
// length must equal the register's declared wire width.
func (d *Driver) WriteRegister(id byte, name Name, data []byte) *CommError {
	if len(data) != int(Width(name)) {
		return newErr(NotAvailable, "register %d expects %d bytes, got %d", name, Width(name), len(data))
	}
	return d.Write(id, Address(name), data)
}

// Read1Byte, Read2Byte and Read4Byte read a named register and decode it as
// a little-endian unsigned integer of the matching width.
func (d *Driver) Read1Byte(id byte, name Name) (uint8, *CommError) {
	data, err := d.ReadRegister(id, name)
	if err != nil {
		return 0, err
	}
	if len(data) != 1 {
		return 0, newErr(SomethingWentWrong, "expected 1 byte, got %d", len(data))
	}
	return data[0], nil
}

func (d *Driver) Read2Byte(id byte, name Name) (uint16, *CommError) {
	data, err := d.ReadRegister(id, name)
	if err != nil {
		return 0, err
	}
	if len(data) != 2 {
		return 0, newErr(SomethingWentWrong, "expected 2 bytes, got %d", len(data))
	}
	return uint16(data[0]) | uint16(data[1])<<8, nil
}

func (d *Driver) Read4Byte(id byte, name Name) (uint32, *CommError) {
	data, err := d.ReadRegister(id, name)
	if err != nil {
		return 0, err
	}
	if len(data) != 4 {
		return 0, newErr(SomethingWentWrong, "expected 4 bytes, got %d", len(data))
	}
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24, nil
}

// Write1Byte, Write2Byte and Write4Byte encode val as little-endian bytes
// of the register's declared width and write it.
func (d *Driver) Write1Byte(id byte, name Name, val uint8) *CommError {
	return d.WriteRegister(id, name, []byte{val})
}

func (d *Driver) Write2Byte(id byte, name Name, val uint16) *CommError {
	return d.WriteRegister(id, name, []byte{byte(val), byte(val >> 8)})
}

func (d *Driver) Write4Byte(id byte, name Name, val uint32) *CommError {
	return d.WriteRegister(id, name, []byte{
		byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24),
	})
}

// Reboot sends Reboot to id.
func (d *Driver) Reboot(id byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	BuildFrame(&d.buildBuf, id, InstReboot, nil)
	d.sendPacket(&d.buildBuf)

	if id == BroadcastID {
		return nil
	}
	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "reboot error byte %d", status.Error)
	}
	return nil
}

// factoryResetModeExceptIDAndBaud resets everything except the servo's ID
// and baud rate — the only mode this driver issues.
const factoryResetModeExceptIDAndBaud byte = 0x02

// FactoryReset sends FactoryReset to id with reset mode 0x02 (reset all
// except ID and baud rate). Other vendor reset modes (0x01, 0xFF) are a
// documented extension point, not implemented here.
func (d *Driver) FactoryReset(id byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	BuildFrame(&d.buildBuf, id, InstFactoryReset, []byte{factoryResetModeExceptIDAndBaud})
	d.sendPacket(&d.buildBuf)

	if id == BroadcastID {
		return nil
	}
	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "factory reset error byte %d", status.Error)
	}
	return nil
}

// RegWrite stages data at address on id without committing it; a
// subsequent Action (or a hardware trigger) applies it. Supplements the
// distilled command set with the vendor's deferred-write instruction.
func (d *Driver) RegWrite(id byte, address uint16, data []byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	params := make([]byte, 2+len(data))
	params[0] = byte(address)
	params[1] = byte(address >> 8)
	copy(params[2:], data)

	BuildFrame(&d.buildBuf, id, InstRegWrite, params)
	d.sendPacket(&d.buildBuf)

	if id == BroadcastID {
		return nil
	}
	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "reg_write error byte %d", status.Error)
	}
	return nil
}

// Action triggers every RegWrite staged on id since its last commit.
func (d *Driver) Action(id byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	BuildFrame(&d.buildBuf, id, InstAction, nil)
	d.sendPacket(&d.buildBuf)

	if id == BroadcastID {
		return nil
	}
	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "action error byte %d", status.Error)
	}
	return nil
}

// Clear sends the Clear maintenance instruction (e.g. resetting the
// multi-turn revolution counter). option and data are passed through
// verbatim; their meaning is documented by the vendor per control-table
// revision, not re-typed here.
func (d *Driver) Clear(id byte, option byte, data [4]byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	params := append([]byte{option}, data[:]...)
	BuildFrame(&d.buildBuf, id, InstClear, params)
	d.sendPacket(&d.buildBuf)

	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "clear error byte %d", status.Error)
	}
	return nil
}

// ControlTableBackup sends the ControlTableBackup maintenance instruction
// (backup or restore the EEPROM control table). mode is passed through
// verbatim per the vendor's documented values.
func (d *Driver) ControlTableBackup(id byte, mode byte) *CommError {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	BuildFrame(&d.buildBuf, id, InstControlTableBackup, []byte{mode})
	d.sendPacket(&d.buildBuf)

	status, err := d.receivePacket()
	if err != nil {
		return err
	}
	if status.Error != ErrNone {
		return newErr(SomethingWentWrong, "control_table_backup error byte %d", status.Error)
	}
	return nil
}

// SyncReadResult is one servo's response to a SyncRead, or the error
// encountered waiting for it.
type SyncReadResult struct {
	ID   byte
	Data []byte
	Err  *CommError
}

// SyncRead broadcasts a single SyncRead instruction for name across ids,
// then collects one status response per id in request order — the order
// the source code is documented to expect servos to answer in. A servo
// that times out yields a per-id error in its result slot without failing
// the others; SyncRead only returns a top-level error if every id failed.
func (d *Driver) SyncRead(ids []byte, name Name) ([]SyncReadResult, *CommError) {
	if len(ids) == 0 {
		return nil, newErr(NotAvailable, "sync_read requires at least one id")
	}
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	width := uint16(Width(name))
	params := make([]byte, 4+len(ids))
	addr := Address(name)
	params[0] = byte(addr)
	params[1] = byte(addr >> 8)
	params[2] = byte(width)
	params[3] = byte(width >> 8)
	copy(params[4:], ids)

	BuildFrame(&d.buildBuf, BroadcastID, InstSyncRead, params)
	d.sendPacket(&d.buildBuf)

	results := make([]SyncReadResult, len(ids))
	okCount := 0
	for i, id := range ids {
		results[i].ID = id
		status, err := d.receivePacket()
		if err != nil {
			results[i].Err = err
			continue
		}
		if status.Error != ErrNone {
			results[i].Err = newErr(SomethingWentWrong, "sync_read error byte %d for id %d", status.Error, status.ID)
			continue
		}
		data := make([]byte, len(status.Params))
		copy(data, status.Params)
		results[i].Data = data
		okCount++
	}

	if okCount == 0 {
		return results, newErr(RxFail, "no servo responded to sync_read")
	}
	return results, nil
}

// SyncWriteEntry is one servo's payload within a SyncWrite.
type SyncWriteEntry struct {
	ID   byte
	Data []byte
}

// SyncWrite broadcasts a single SyncWrite instruction carrying every
// entry's data for name. It is one-way: no status response is expected or
// awaited, since the instruction targets BroadcastID.
func (d *Driver) SyncWrite(entries []SyncWriteEntry, name Name) *CommError {
	if len(entries) == 0 {
		return newErr(NotAvailable, "sync_write requires at least one entry")
	}
	width := int(Width(name))
	for _, e := range entries {
		if len(e.Data) != width {
			return newErr(NotAvailable, "sync_write id %d: expected %d bytes, got %d", e.ID, width, len(e.Data))
		}
	}

	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	addr := Address(name)
	params := make([]byte, 0, 4+len(entries)*(1+width))
	params = append(params, byte(addr), byte(addr>>8), byte(uint16(width)), byte(uint16(width)>>8))
	for _, e := range entries {
		params = append(params, e.ID)
		params = append(params, e.Data...)
	}

	BuildFrame(&d.buildBuf, BroadcastID, InstSyncWrite, params)
	d.sendPacket(&d.buildBuf)
	return nil
}
