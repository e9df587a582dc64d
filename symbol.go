// go-qrcode
// Copyright 2014 Tom Harwood

package qrcode

// symbol is the working grid a QR Code symbol is assembled on.
//
// A symbol consists of size*size modules. Every module carries its value, a
// used flag and the structural role it was placed with, so that the finished
// grid can be handed to a SymbolMatrix without a second classification pass.
//
// Modules are addressed as (x, y) with (0, 0) the top left module. The quiet
// zone is not stored, see bitmap().
type symbol struct {
	// Value of module at [y*size+x]. True is dark.
	module []bool

	// True if the module at [y*size+x] is used (to either true or false).
	// Used to identify unused modules.
	isUsed []bool

	role   []CellRole
	marker []MarkerIndex

	// Width/height of the symbol only.
	size int
}

// newSymbol constructs an empty symbol of size size*size.
func newSymbol(size int) *symbol {
	m := &symbol{
		module: make([]bool, size*size),
		isUsed: make([]bool, size*size),
		role:   make([]CellRole, size*size),
		marker: make([]MarkerIndex, size*size),
		size:   size,
	}

	for i := range m.marker {
		m.marker[i] = NoMarker
	}

	return m
}

// clone returns an independent copy of the symbol.
func (m *symbol) clone() *symbol {
	return &symbol{
		module: append([]bool(nil), m.module...),
		isUsed: append([]bool(nil), m.isUsed...),
		role:   append([]CellRole(nil), m.role...),
		marker: append([]MarkerIndex(nil), m.marker...),
		size:   m.size,
	}
}

// get returns the module value at (x, y).
func (m *symbol) get(x int, y int) bool {
	return m.module[y*m.size+x]
}

// empty returns true if the module at (x, y) has not been set (to either true
// or false).
func (m *symbol) empty(x int, y int) bool {
	return !m.isUsed[y*m.size+x]
}

// numEmptyModules returns the number of empty modules.
//
// Initially numEmptyModules is size * size. After every module has been set
// (to either true or false), the number of empty modules is zero.
func (m *symbol) numEmptyModules() int {
	var count int
	for _, used := range m.isUsed {
		if !used {
			count++
		}
	}

	return count
}

// set sets the module at (x, y) to v with the given role.
func (m *symbol) set(x int, y int, v bool, role CellRole) {
	i := y*m.size + x

	m.module[i] = v
	m.isUsed[i] = true
	m.role[i] = role
}

// set2dPattern sets a 2D array of modules, starting at (x, y), all belonging
// to marker.
func (m *symbol) set2dPattern(x int, y int, v [][]bool, role CellRole, marker MarkerIndex) {
	for j, row := range v {
		for i, value := range row {
			m.set(x+i, y+j, value, role)
			m.marker[(y+j)*m.size+x+i] = marker
		}
	}
}

// bitmap returns the symbol surrounded by a quiet zone of quietZone modules.
//
// bitmap[y][x] is true if the module at (x, y) is dark.
func (m *symbol) bitmap(quietZone int) [][]bool {
	total := m.size + 2*quietZone
	result := make([][]bool, total)

	for y := range result {
		result[y] = make([]bool, total)

		if y < quietZone || y >= quietZone+m.size {
			continue
		}

		copy(result[y][quietZone:], m.module[(y-quietZone)*m.size:(y-quietZone+1)*m.size])
	}

	return result
}

// Constants used to weight penalty calculations. Specified by ISO/IEC
// 18004:2006.
const (
	penaltyWeight1 = 3
	penaltyWeight2 = 3
	penaltyWeight3 = 40
	penaltyWeight4 = 10
)

// penaltyScore returns the penalty score of the symbol. The penalty score
// consists of the sum of the four individual penalty types.
func (m *symbol) penaltyScore() int {
	return m.penalty1() + m.penalty2() + m.penalty3() + m.penalty4()
}

// penalty1 returns the penalty score for "adjacent modules in row/column with
// same colour".
//
// The numbers of adjacent matching modules and scores are:
// 0-4: score = 0
// 5+ : score = penaltyWeight1 + (numAdjacentModules - 5)
func (m *symbol) penalty1() int {
	return m.penalty1Line(true) + m.penalty1Line(false)
}

func (m *symbol) penalty1Line(horizontal bool) int {
	penalty := 0

	for i := 0; i < m.size; i++ {
		count := 0
		var lastValue bool

		for j := 0; j < m.size; j++ {
			var v bool
			if horizontal {
				v = m.get(j, i)
			} else {
				v = m.get(i, j)
			}

			if j > 0 && v == lastValue {
				count++
				continue
			}

			if count >= 5 {
				penalty += penaltyWeight1 + (count - 5)
			}

			count = 1
			lastValue = v
		}

		if count >= 5 {
			penalty += penaltyWeight1 + (count - 5)
		}
	}

	return penalty
}

// penalty2 returns the penalty score for "block of modules in the same colour".
//
// Every 2x2 block of one colour scores penaltyWeight2.
func (m *symbol) penalty2() int {
	penalty := 0

	for y := 1; y < m.size; y++ {
		for x := 1; x < m.size; x++ {
			topLeft := m.get(x-1, y-1)
			above := m.get(x, y-1)
			left := m.get(x-1, y)
			current := m.get(x, y)

			if current == left && current == above && current == topLeft {
				penalty++
			}
		}
	}

	return penalty * penaltyWeight2
}

// finderLike is the 1:1:3:1:1 (dark:light:dark:light:dark) run.
var finderLike = [7]bool{true, false, true, true, true, false, true}

// penalty3 returns the penalty score for "1:1:3:1:1 ratio
// (dark:light:dark:light:dark) pattern in row/column, preceded or followed by
// light area 4 modules wide".
//
// Each occurrence scores penaltyWeight3.
func (m *symbol) penalty3() int {
	penalty := 0

	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			if m.finderLikeAt(x, y, 1, 0) {
				penalty += penaltyWeight3
			}

			if m.finderLikeAt(x, y, 0, 1) {
				penalty += penaltyWeight3
			}
		}
	}

	return penalty
}

// finderLikeAt reports whether the finder-like run starts at (x, y) in the
// direction (dx, dy) with four light modules on at least one side.
func (m *symbol) finderLikeAt(x, y, dx, dy int) bool {
	for k, want := range finderLike {
		px, py := x+k*dx, y+k*dy
		if px >= m.size || py >= m.size || m.get(px, py) != want {
			return false
		}
	}

	return m.isLightRun(x-4*dx, y-4*dy, dx, dy) || m.isLightRun(x+7*dx, y+7*dy, dx, dy)
}

// isLightRun reports whether the four modules from (x, y) in direction
// (dx, dy) are inside the symbol and light.
func (m *symbol) isLightRun(x, y, dx, dy int) bool {
	for k := 0; k < 4; k++ {
		px, py := x+k*dx, y+k*dy
		if px < 0 || py < 0 || px >= m.size || py >= m.size || m.get(px, py) {
			return false
		}
	}

	return true
}

// penalty4 returns the penalty score for the deviation of the proportion of
// dark modules from 50%. Each full 5% of deviation scores penaltyWeight4.
func (m *symbol) penalty4() int {
	numModules := m.size * m.size
	numDarkModules := 0

	for _, v := range m.module {
		if v {
			numDarkModules++
		}
	}

	deviation := numDarkModules*2 - numModules
	if deviation < 0 {
		deviation = -deviation
	}

	return penaltyWeight4 * (deviation * 10 / numModules)
}
