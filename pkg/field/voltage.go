package field

// VoltageMap assigns a voltage to each pin.
type VoltageMap map[PinID]int

// ApplyVoltages copies voltages onto the Metal cells of g.
//
// Cells whose pin has an entry take its value; cells whose pin has no entry
// keep their voltage; Metal cells without a pin are reset to 0. Air cells are
// not touched, so applying the same map twice is the same as applying it once.
func ApplyVoltages(g *Grid, voltages VoltageMap) {
	for i := range g.cells {
		c := &g.cells[i]
		if c.Kind != Metal {
			continue
		}
		if !c.HasPin {
			c.Voltage = 0
			continue
		}
		if v, ok := voltages[c.Pin]; ok {
			c.Voltage = v
		}
	}
}
