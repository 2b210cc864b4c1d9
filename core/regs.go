package core

// GPIOPin identifies a pin within a single GPIO bank (0-15 on STM32F4)
type GPIOPin uint8

// PinMode is the 2-bit value of a pin's field in the GPIOx_MODER register
type PinMode uint32

// MODER field encodings
const (
	ModeInput     PinMode = 0b00
	ModeOutput    PinMode = 0b01
	ModeAlternate PinMode = 0b10
	ModeAnalog    PinMode = 0b11

	modeFieldWidth = 2
	modeFieldMask  = 0b11
)

// STM32F4 reference layout (RM0090 / RM0383)
const (
	RCC_AHB1ENR_GPIOAEN = 1 << 0 // GPIO port A clock enable

	// Reset value of GPIOA_MODER: PA13/PA14 (SWD) and PA15 (JTDI) in alternate mode
	GPIOA_MODER_Reset = 0xA8000000

	// User LED LD2 on Nucleo-64 boards
	LEDPin GPIOPin = 5
)

// Register32 is a 32-bit memory-mapped register.
// TinyGo's *volatile.Register32 satisfies it directly.
type Register32 interface {
	Get() uint32
	Set(value uint32)
}

// RegisterBank is the set of registers the blink controller owns:
// the peripheral clock enable register and one GPIO bank's mode and
// output data registers.
type RegisterBank struct {
	ClockEnable Register32 // RCC_AHB1ENR
	Mode        Register32 // GPIOx_MODER
	Output      Register32 // GPIOx_ODR
}

// SetBits sets the bits in mask, leaving the others unchanged
func SetBits(r Register32, mask uint32) {
	r.Set(r.Get() | mask)
}

// ClearBits clears the bits in mask, leaving the others unchanged
func ClearBits(r Register32, mask uint32) {
	r.Set(r.Get() &^ mask)
}

// HasBits reports whether any bit in mask is set
func HasBits(r Register32, mask uint32) bool {
	return r.Get()&mask != 0
}

// ReplaceBits replaces the field (mask << pos) with value in a single write
func ReplaceBits(r Register32, value, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}

// ModeShift returns the bit offset of pin's field in the MODER register
func ModeShift(pin GPIOPin) uint8 {
	return uint8(pin) * modeFieldWidth
}

// ModeMask returns the MODER bits belonging to pin
func ModeMask(pin GPIOPin) uint32 {
	return modeFieldMask << ModeShift(pin)
}

// OutputMask returns the ODR bit for pin
func OutputMask(pin GPIOPin) uint32 {
	return 1 << uint32(pin)
}

// PinModeOf decodes pin's mode from a MODER value
func PinModeOf(moder uint32, pin GPIOPin) PinMode {
	return PinMode((moder >> ModeShift(pin)) & modeFieldMask)
}
