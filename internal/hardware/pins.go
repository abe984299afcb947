package hardware

// I2C device addresses on the shared bus.
const (
	Ds3231Addr  = 0x68
	At24c32Addr = 0x57
)

// Input line offsets on the configured GPIO chip.
var InputMappings = map[string]int{
	"pir":              4,
	"button_select":    5,
	"button_increment": 6,
}

// Shift register line offsets on the configured GPIO chip. Two
// daisy-chained 8-bit registers drive the fourteen indicators.
var IndicatorMappings = map[string]int{
	"sr_data":  17,
	"sr_clock": 27,
	"sr_latch": 22,
}
