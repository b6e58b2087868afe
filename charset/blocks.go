// Package charset implements the byte- and code-point-level classification
// rules shared by every decoder: which bytes are printable ASCII, and which
// Unicode block a BMP code point belongs to.
package charset

// Tag identifies a Unicode block. NoBlock means the code point is not
// assigned to any block this package tracks.
type Tag uint16

// NoBlock is the "not assigned / not tracked" sentinel.
const NoBlock Tag = 0xFF

// blockRange describes one contiguous, inclusive code-point range.
type blockRange struct {
	name   string
	lo, hi uint16
}

// Block tags. Values are stable across process lifetime but are not meant
// to be persisted — renumber freely when adding blocks.
const (
	BasicLatin Tag = iota
	Latin1Supplement
	LatinExtendedA
	LatinExtendedB
	IPAExtensions
	SpacingModifierLetters
	CombiningDiacriticalMarks
	GreekAndCoptic
	Cyrillic
	CyrillicSupplement
	Armenian
	Hebrew
	Arabic
	Devanagari
	Bengali
	Thai
	Georgian
	HangulJamo
	LatinExtendedAdditional
	GreekExtended
	GeneralPunctuation
	SuperscriptsAndSubscripts
	CurrencySymbols
	CombiningDiacriticalMarksForSymbols
	LetterlikeSymbols
	NumberForms
	Arrows
	MathematicalOperators
	MiscellaneousTechnical
	ControlPictures
	OpticalCharacterRecognition
	EnclosedAlphanumerics
	BoxDrawing
	BlockElements
	GeometricShapes
	MiscellaneousSymbols
	Dingbats
	SupplementalArrowsA
	SupplementalArrowsB
	SupplementalMathematicalOperators
	MiscellaneousSymbolsAndArrows
	LatinExtendedC
	CJKRadicalsSupplement
	CJKSymbolsAndPunctuation
	Hiragana
	Katakana
	Bopomofo
	HangulCompatibilityJamo
	CJKUnifiedIdeographsExtensionA
	CJKUnifiedIdeographs
	YiSyllables
	HangulSyllables
	CJKCompatibilityIdeographs
	AlphabeticPresentationForms
	ArabicPresentationFormsA
	VariationSelectors
	CJKCompatibilityForms
	SmallFormVariants
	ArabicPresentationFormsB
	HalfwidthAndFullwidthForms
	Specials
	LatinExtendedD
	LatinExtendedE
	SupplementalPunctuation
	PrivateUseArea

	blockCount
)

// ranges is the literal block-range description the lookup tables are
// generated from.
var ranges = [blockCount]blockRange{
	BasicLatin:                          {"BasicLatin", 0x0000, 0x007F},
	Latin1Supplement:                    {"Latin-1 Supplement", 0x0080, 0x00FF},
	LatinExtendedA:                      {"Latin Extended-A", 0x0100, 0x017F},
	LatinExtendedB:                      {"Latin Extended-B", 0x0180, 0x024F},
	IPAExtensions:                       {"IPA Extensions", 0x0250, 0x02AF},
	SpacingModifierLetters:              {"Spacing Modifier Letters", 0x02B0, 0x02FF},
	CombiningDiacriticalMarks:           {"Combining Diacritical Marks", 0x0300, 0x036F},
	GreekAndCoptic:                      {"Greek and Coptic", 0x0370, 0x03FF},
	Cyrillic:                            {"Cyrillic", 0x0400, 0x04FF},
	CyrillicSupplement:                  {"Cyrillic Supplement", 0x0500, 0x052F},
	Armenian:                            {"Armenian", 0x0530, 0x058F},
	Hebrew:                              {"Hebrew", 0x0590, 0x05FF},
	Arabic:                              {"Arabic", 0x0600, 0x06FF},
	Devanagari:                          {"Devanagari", 0x0900, 0x097F},
	Bengali:                             {"Bengali", 0x0980, 0x09FF},
	Thai:                                {"Thai", 0x0E00, 0x0E7F},
	Georgian:                            {"Georgian", 0x10A0, 0x10FF},
	HangulJamo:                          {"Hangul Jamo", 0x1100, 0x11FF},
	LatinExtendedAdditional:             {"Latin Extended Additional", 0x1E00, 0x1EFF},
	GreekExtended:                       {"Greek Extended", 0x1F00, 0x1FFF},
	GeneralPunctuation:                  {"General Punctuation", 0x2000, 0x206F},
	SuperscriptsAndSubscripts:           {"Superscripts and Subscripts", 0x2070, 0x209F},
	CurrencySymbols:                     {"Currency Symbols", 0x20A0, 0x20CF},
	CombiningDiacriticalMarksForSymbols: {"Combining Diacritical Marks for Symbols", 0x20D0, 0x20FF},
	LetterlikeSymbols:                   {"Letterlike Symbols", 0x2100, 0x214F},
	NumberForms:                         {"Number Forms", 0x2150, 0x218F},
	Arrows:                              {"Arrows", 0x2190, 0x21FF},
	MathematicalOperators:               {"Mathematical Operators", 0x2200, 0x22FF},
	MiscellaneousTechnical:              {"Miscellaneous Technical", 0x2300, 0x23FF},
	ControlPictures:                     {"Control Pictures", 0x2400, 0x243F},
	OpticalCharacterRecognition:         {"Optical Character Recognition", 0x2440, 0x245F},
	EnclosedAlphanumerics:               {"Enclosed Alphanumerics", 0x2460, 0x24FF},
	BoxDrawing:                          {"Box Drawing", 0x2500, 0x257F},
	BlockElements:                       {"Block Elements", 0x2580, 0x259F},
	GeometricShapes:                     {"Geometric Shapes", 0x25A0, 0x25FF},
	MiscellaneousSymbols:                {"Miscellaneous Symbols", 0x2600, 0x26FF},
	Dingbats:                            {"Dingbats", 0x2700, 0x27BF},
	SupplementalArrowsA:                 {"Supplemental Arrows-A", 0x27F0, 0x27FF},
	SupplementalArrowsB:                 {"Supplemental Arrows-B", 0x2900, 0x297F},
	SupplementalMathematicalOperators:   {"Supplemental Mathematical Operators", 0x2A00, 0x2AFF},
	MiscellaneousSymbolsAndArrows:       {"Miscellaneous Symbols and Arrows", 0x2B00, 0x2BFF},
	LatinExtendedC:                      {"Latin Extended-C", 0x2C60, 0x2C7F},
	CJKRadicalsSupplement:               {"CJK Radicals Supplement", 0x2E80, 0x2EFF},
	CJKSymbolsAndPunctuation:            {"CJK Symbols and Punctuation", 0x3000, 0x303F},
	Hiragana:                            {"Hiragana", 0x3040, 0x309F},
	Katakana:                            {"Katakana", 0x30A0, 0x30FF},
	Bopomofo:                            {"Bopomofo", 0x3100, 0x312F},
	HangulCompatibilityJamo:             {"Hangul Compatibility Jamo", 0x3130, 0x318F},
	CJKUnifiedIdeographsExtensionA:      {"CJK Unified Ideographs Extension A", 0x3400, 0x4DBF},
	CJKUnifiedIdeographs:                {"CJK Unified Ideographs", 0x4E00, 0x9FFF},
	YiSyllables:                         {"Yi Syllables", 0xA000, 0xA48F},
	HangulSyllables:                     {"Hangul Syllables", 0xAC00, 0xD7A3},
	CJKCompatibilityIdeographs:          {"CJK Compatibility Ideographs", 0xF900, 0xFAFF},
	AlphabeticPresentationForms:         {"Alphabetic Presentation Forms", 0xFB00, 0xFB4F},
	ArabicPresentationFormsA:            {"Arabic Presentation Forms-A", 0xFB50, 0xFDFF},
	VariationSelectors:                  {"Variation Selectors", 0xFE00, 0xFE0F},
	CJKCompatibilityForms:               {"CJK Compatibility Forms", 0xFE30, 0xFE4F},
	SmallFormVariants:                   {"Small Form Variants", 0xFE50, 0xFE6F},
	ArabicPresentationFormsB:            {"Arabic Presentation Forms-B", 0xFE70, 0xFEFF},
	HalfwidthAndFullwidthForms:          {"Halfwidth and Fullwidth Forms", 0xFF00, 0xFFEF},
	Specials:                            {"Specials", 0xFFF0, 0xFFFD},
	LatinExtendedD:                      {"Latin Extended-D", 0xA720, 0xA7FF},
	LatinExtendedE:                      {"Latin Extended-E", 0xAB30, 0xAB6F},
	SupplementalPunctuation:             {"Supplemental Punctuation", 0x2E00, 0x2E7F},
	PrivateUseArea:                      {"Private Use Area", 0xE000, 0xF8FF},
}

// codePointBlock is the 65536-entry CodePoint→BlockTag table, populated
// once in init() from ranges above.
var codePointBlock [1 << 16]Tag

// latinExtensionTags is the LatinExtensions union: every block that is
// compatibility-equivalent to BasicLatin.
var latinExtensionTags = map[Tag]bool{
	Latin1Supplement:        true,
	LatinExtendedA:          true,
	LatinExtendedAdditional: true,
	LatinExtendedB:          true,
	LatinExtendedC:          true,
	LatinExtendedD:          true,
	LatinExtendedE:          true,
}

func init() {
	for i := range codePointBlock {
		codePointBlock[i] = NoBlock
	}
	for tag, r := range ranges {
		for cp := uint32(r.lo); cp <= uint32(r.hi); cp++ {
			codePointBlock[cp] = Tag(tag)
		}
	}
	// Surrogates (U+D800-U+DFFF) are deliberately left as NoBlock: both
	// UTF-16 and UTF-8 decoders treat them as "no block" regardless of any
	// range table, so they always end a run.
	for cp := uint32(0xD800); cp <= 0xDFFF; cp++ {
		codePointBlock[cp] = NoBlock
	}
}

// BlockOf returns the block a BMP code point belongs to, and false if the
// code point isn't assigned to any tracked block.
func BlockOf(cp uint16) (Tag, bool) {
	t := codePointBlock[cp]
	return t, t != NoBlock
}

// Name returns the human-readable name of a block tag.
func Name(t Tag) string {
	if int(t) >= len(ranges) {
		return "Unknown"
	}
	return ranges[t].name
}

// Compatible implements the block-run compatibility rule: two blocks are
// compatible if they're equal, or if both are in
// {BasicLatin} ∪ LatinExtensions.
func Compatible(a, b Tag) bool {
	if a == b {
		return true
	}
	return isBasicLatinFamily(a) && isBasicLatinFamily(b)
}

func isBasicLatinFamily(t Tag) bool {
	return t == BasicLatin || latinExtensionTags[t]
}

// AllBlockNames lists every block this package recognizes, for CLI option
// parsing and the "All" alias.
func AllBlockNames() []string {
	names := make([]string, 0, blockCount)
	for _, r := range ranges {
		names = append(names, r.name)
	}
	return names
}

// TagByName resolves a block name to its tag, case-sensitively matching the
// names returned by AllBlockNames.
func TagByName(name string) (Tag, bool) {
	for tag, r := range ranges {
		if r.name == name {
			return Tag(tag), true
		}
	}
	return 0, false
}
