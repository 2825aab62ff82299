package dxl

// Name identifies a Dynamixel Protocol 2.0 control-table register by its
// symbolic name. The X-series (XM430, XC330) control-table layout is fixed;
// Name is a dense enumeration so Address/Width/Scale resolve via array
// indexing rather than a map lookup.
type Name int

const (
	ModelNumber Name = iota
	ModelInformation
	FirmwareVersion
	ID
	BaudRate
	ReturnDelayTime
	DriveMode
	OperatingMode
	SecondaryID
	ProtocolType
	HomingOffset
	MovingThreshold
	TemperatureLimit
	MaxVoltageLimit
	MinVoltageLimit
	PWMLimit
	CurrentLimit
	VelocityLimit
	MaxPositionLimit
	MinPositionLimit
	StartupConfiguration
	PWMSlope
	Shutdown
	TorqueEnable
	LED
	StatusReturnLevel
	RegisteredInstruction
	HardwareErrorStatus
	VelocityIGain
	VelocityPGain
	PositionDGain
	PositionIGain
	PositionPGain
	Feedforward2ndGain
	Feedforward1stGain
	BusWatchdog
	GoalPWM
	GoalCurrent
	GoalVelocity
	ProfileAcceleration
	ProfileVelocity
	GoalPosition
	RealtimeTick
	Moving
	MovingStatus
	PresentPWM
	PresentCurrent
	PresentVelocity
	PresentPosition
	VelocityTrajectory
	PositionTrajectory
	PresentInputVoltage
	PresentTemperature
	BackupReady
	IndirectAddress1
	IndirectAddress2
	IndirectAddress3
	IndirectAddress4
	IndirectAddress5
	IndirectAddress6
	IndirectAddress7
	IndirectAddress8
	IndirectAddress9
	IndirectAddress10
	IndirectAddress11
	IndirectAddress12
	IndirectAddress13
	IndirectAddress14
	IndirectAddress15
	IndirectAddress16
	IndirectAddress17
	IndirectAddress18
	IndirectAddress19
	IndirectAddress20
	IndirectData1
	IndirectData2
	IndirectData3
	IndirectData4
	IndirectData5
	IndirectData6
	IndirectData7
	IndirectData8
	IndirectData9
	IndirectData10
	IndirectData11
	IndirectData12
	IndirectData13
	IndirectData14
	IndirectData15
	IndirectData16
	IndirectData17
	IndirectData18
	IndirectData19
	IndirectData20

	nameCount
)

// Model tags the motor family a Driver is talking to. Only used to resolve
// the handful of registers whose scale factor varies by family (e.g.
// PresentCurrent).
type Model int

const (
	XM430W350 Model = iota
	XC330T181
)

type entry struct {
	address uint16
	width   uint8
	scale   float32
}

// controlTable is indexed by Name and holds the address/width/default-scale
// triple for every register. Entries whose scale depends on Model are
// special-cased in Scale below rather than duplicating the table.
var controlTable = [nameCount]entry{
	ModelNumber:            {0, 2, 1.0},
	ModelInformation:       {2, 4, 1.0},
	FirmwareVersion:        {6, 1, 1.0},
	ID:                     {7, 1, 1.0},
	BaudRate:               {8, 1, 1.0},
	ReturnDelayTime:        {9, 1, 2.0},
	DriveMode:              {10, 1, 1.0},
	OperatingMode:          {11, 1, 1.0},
	SecondaryID:            {12, 1, 1.0},
	ProtocolType:           {13, 1, 1.0},
	HomingOffset:           {20, 4, 2.0},
	MovingThreshold:        {24, 4, 0.229},
	TemperatureLimit:       {31, 1, 1.0},
	MaxVoltageLimit:        {32, 2, 0.1},
	MinVoltageLimit:        {34, 2, 0.1},
	PWMLimit:               {36, 2, 0.113},
	CurrentLimit:           {38, 2, 1.0},
	VelocityLimit:          {44, 4, 0.229},
	MaxPositionLimit:       {48, 4, 1.0},
	MinPositionLimit:       {52, 4, 1.0},
	StartupConfiguration:   {60, 1, 1.0},
	PWMSlope:               {62, 1, 3.955},
	Shutdown:               {63, 1, 1.0},
	TorqueEnable:           {64, 1, 1.0},
	LED:                    {65, 1, 1.0},
	StatusReturnLevel:      {68, 1, 1.0},
	RegisteredInstruction:  {69, 1, 1.0},
	HardwareErrorStatus:    {70, 1, 1.0},
	VelocityIGain:          {76, 2, 1.0},
	VelocityPGain:          {78, 2, 1.0},
	PositionDGain:          {80, 2, 1.0},
	PositionIGain:          {82, 2, 1.0},
	PositionPGain:          {84, 2, 1.0},
	Feedforward2ndGain:     {88, 2, 1.0},
	Feedforward1stGain:     {90, 2, 1.0},
	BusWatchdog:            {98, 1, 20.0},
	GoalPWM:                {100, 2, 0.113},
	GoalCurrent:            {102, 2, 1.0},
	GoalVelocity:           {104, 4, 0.229},
	ProfileAcceleration:    {108, 4, 214.577},
	ProfileVelocity:        {112, 4, 0.229},
	GoalPosition:           {116, 4, 1.0},
	RealtimeTick:           {120, 2, 1.0},
	Moving:                 {122, 1, 1.0},
	MovingStatus:           {123, 1, 1.0},
	PresentPWM:             {124, 2, 0.113},
	PresentCurrent:         {126, 2, 2.69}, // default XM430-W350 scale; see Scale()
	PresentVelocity:        {128, 4, 0.229},
	PresentPosition:        {132, 4, 1.0},
	VelocityTrajectory:     {136, 4, 0.229},
	PositionTrajectory:     {140, 4, 1.0},
	PresentInputVoltage:    {144, 2, 0.1},
	PresentTemperature:     {146, 1, 1.0},
	BackupReady:            {147, 1, 1.0},
	IndirectAddress1:       {168, 2, 1.0},
	IndirectAddress2:       {170, 2, 1.0},
	IndirectAddress3:       {172, 2, 1.0},
	IndirectAddress4:       {174, 2, 1.0},
	IndirectAddress5:       {176, 2, 1.0},
	IndirectAddress6:       {178, 2, 1.0},
	IndirectAddress7:       {180, 2, 1.0},
	IndirectAddress8:       {182, 2, 1.0},
	IndirectAddress9:       {184, 2, 1.0},
	IndirectAddress10:      {186, 2, 1.0},
	IndirectAddress11:      {188, 2, 1.0},
	IndirectAddress12:      {190, 2, 1.0},
	IndirectAddress13:      {192, 2, 1.0},
	IndirectAddress14:      {194, 2, 1.0},
	IndirectAddress15:      {196, 2, 1.0},
	IndirectAddress16:      {198, 2, 1.0},
	IndirectAddress17:      {200, 2, 1.0},
	IndirectAddress18:      {202, 2, 1.0},
	IndirectAddress19:      {204, 2, 1.0},
	IndirectAddress20:      {206, 2, 1.0},
	IndirectData1:          {208, 1, 1.0},
	IndirectData2:          {209, 1, 1.0},
	IndirectData3:          {210, 1, 1.0},
	IndirectData4:          {211, 1, 1.0},
	IndirectData5:          {212, 1, 1.0},
	IndirectData6:          {213, 1, 1.0},
	IndirectData7:          {214, 1, 1.0},
	IndirectData8:          {215, 1, 1.0},
	IndirectData9:          {216, 1, 1.0},
	IndirectData10:         {217, 1, 1.0},
	IndirectData11:         {218, 1, 1.0},
	IndirectData12:         {219, 1, 1.0},
	IndirectData13:         {220, 1, 1.0},
	IndirectData14:         {221, 1, 1.0},
	IndirectData15:         {222, 1, 1.0},
	IndirectData16:         {223, 1, 1.0},
	IndirectData17:         {224, 1, 1.0},
	IndirectData18:         {225, 1, 1.0},
	IndirectData19:         {226, 1, 1.0},
	IndirectData20:         {227, 1, 1.0},
}

// Address returns the byte offset of a control-table register.
func Address(n Name) uint16 {
	return controlTable[n].address
}

// Width returns the wire byte-width (1, 2, or 4) of a control-table register.
func Width(n Name) uint8 {
	return controlTable[n].width
}

// Scale returns the unit-per-raw-count conversion factor for a register on a
// given motor model. Only PresentCurrent differs by model; every other
// register's scale is model-independent.
func Scale(n Name, model Model) float32 {
	if n == PresentCurrent && model == XC330T181 {
		return 1.0
	}
	return controlTable[n].scale
}

// Operating modes, per Protocol 2.0 X-series control table address 11.
// This is the canonical mapping: some historical drafts of the source
// duplicated a variant here, the vendor table has exactly these six values.
const (
	OpModeCurrent               uint8 = 0
	OpModeVelocity              uint8 = 1
	OpModePosition              uint8 = 3
	OpModeExtendedPosition      uint8 = 4
	OpModeCurrentBasedPosition  uint8 = 5
	OpModePWM                   uint8 = 16
)
