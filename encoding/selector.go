package encoding

// Selector extension types. Extensions trade packed-slot count against bits
// reserved for an embedded trailing-zero count, so wide values with long
// zero tails still fit a 64-bit word.
const (
	extBase       = iota // plain value slots, no trailing-zero field
	extSeven             // 4 count bits, multiplier 1, for modest zero tails
	extEightSmall        // 4 count bits, multiplier 4, up to 60 elided zeros
	extEightLarge        // 5 count bits, multiplier 4, up to 124 elided zeros
	numExtensions
)

const (
	selectorBits     = 4
	selectorMask     = 0xF
	extSelectorShift = 4

	// Base selector values with special meaning. Selector 0 marks an RLE
	// word; selectors 7 and 8 carry an extended selector in the next nibble.
	rleSelector   = 0
	sevenSelector = 7
	eightSelector = 8

	// One RLE count unit covers 120 repeats, twice a full word of 1-bit
	// slots, so a run worth storing always spans at least two plain words.
	rleMultiplier   = 120
	maxRleUnits     = 16 // the count nibble stores units-1
	maxRleCountWord = maxRleUnits * rleMultiplier
)

// Per-extension layout constants.
var (
	// minDataBits is the minimum width a value occupies under each
	// extension, even for the value zero.
	minDataBits = [numExtensions]uint8{1, 2, 4, 4}
	// countBitsOf is the size of the embedded trailing-zero count field.
	countBitsOf = [numExtensions]uint8{0, 4, 4, 5}
	// countMultOf is the number of elided zeros per count-field unit.
	// The base extension stores no count; 1 keeps the slot math uniform.
	countMultOf = [numExtensions]uint8{1, 1, 4, 4}
	// maxStoredZeros is the largest trailing-zero run an extension elides.
	maxStoredZeros = [numExtensions]uint8{0, 15, 60, 124}
	// maxValueBitsOf is the widest value slot an extension offers.
	maxValueBitsOf = [numExtensions]uint8{60, 52, 52, 51}
	// payloadShiftOf is the bit position where value slots start.
	payloadShiftOf = [numExtensions]uint8{4, 8, 8, 8}
)

// packRow describes one packed-word shape: which selector pair produces it,
// how wide each value slot is and how many slots fit.
type packRow struct {
	selector    uint8 // base selector value
	extSelector uint8 // extended selector value, 0 for base rows
	valueBits   uint8
	slots       uint8
}

// packRows lists each extension's rows ordered by increasing value width,
// equivalently decreasing slot count. The tables are a wire-format constant
// of this module: base rows tile the 60 payload bits with the canonical
// Simple-8b widths (7 and 8 give way to the extension selectors), extension
// rows tile 56 payload bits with value-plus-count slots.
var packRows = [numExtensions][]packRow{
	extBase: {
		{1, 0, 1, 60}, {2, 0, 2, 30}, {3, 0, 3, 20}, {4, 0, 4, 15},
		{5, 0, 5, 12}, {6, 0, 6, 10}, {9, 0, 8, 7}, {10, 0, 10, 6},
		{11, 0, 12, 5}, {12, 0, 15, 4}, {13, 0, 20, 3}, {14, 0, 30, 2},
		{15, 0, 60, 1},
	},
	extSeven: {
		{7, 1, 2, 9}, {7, 2, 3, 8}, {7, 3, 4, 7}, {7, 4, 5, 6},
		{7, 5, 7, 5}, {7, 6, 10, 4}, {7, 7, 14, 3}, {7, 8, 24, 2},
		{7, 9, 52, 1},
	},
	extEightSmall: {
		{8, 1, 4, 7}, {8, 2, 6, 5}, {8, 3, 9, 4}, {8, 4, 14, 3},
		{8, 5, 24, 2}, {8, 6, 52, 1},
	},
	extEightLarge: {
		{8, 8, 4, 6}, {8, 9, 6, 5}, {8, 10, 9, 4}, {8, 11, 13, 3},
		{8, 12, 23, 2}, {8, 13, 51, 1},
	},
}

// decodeEntry resolves a selector pair back to its row and extension.
type decodeEntry struct {
	row packRow
	ext uint8
	ok  bool
}

var (
	baseDecodeTable  [16]decodeEntry
	sevenDecodeTable [16]decodeEntry
	eightDecodeTable [16]decodeEntry
)

func init() {
	for e := range packRows {
		for _, row := range packRows[e] {
			entry := decodeEntry{row: row, ext: uint8(e), ok: true} //nolint:gosec
			switch row.selector {
			case sevenSelector:
				sevenDecodeTable[row.extSelector] = entry
			case eightSelector:
				eightDecodeTable[row.extSelector] = entry
			default:
				baseDecodeTable[row.selector] = entry
			}
		}
	}
}

// findPackRow returns the narrowest row of the given extension whose value
// slots hold width bits.
func findPackRow(ext int, width uint8) (packRow, bool) {
	for _, row := range packRows[ext] {
		if row.valueBits >= width {
			return row, true
		}
	}

	return packRow{}, false
}

// allOnes returns a mask of n low bits set. n must be at most 64.
func allOnes(n uint) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return 1<<n - 1
}

// rleWord builds a run-length word covering units*rleMultiplier repeats.
func rleWord(units int) uint64 {
	return uint64(units-1)<<extSelectorShift | rleSelector //nolint:gosec
}

// rleRepeats extracts the repeat count of a run-length word.
func rleRepeats(word uint64) int {
	return (int(word>>extSelectorShift&selectorMask) + 1) * rleMultiplier
}
