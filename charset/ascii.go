package charset

// printableTable and printableTableExcludeCC are the two 256-entry
// printable-byte lookup tables. The first includes HT/LF/CR alongside the
// 0x20-0x7E graphic range; the second excludes them.
var printableTable [256]bool
var printableTableExcludeCC [256]bool

func init() {
	for b := 0x20; b <= 0x7E; b++ {
		printableTable[b] = true
		printableTableExcludeCC[b] = true
	}
	printableTable[0x09] = true // HT
	printableTable[0x0A] = true // LF
	printableTable[0x0D] = true // CR
}

// IsPrintableASCII reports whether b is a printable ASCII byte. When
// excludeControlCP is true, HT/LF/CR are not considered printable.
func IsPrintableASCII(b byte, excludeControlCP bool) bool {
	if excludeControlCP {
		return printableTableExcludeCC[b]
	}
	return printableTable[b]
}
