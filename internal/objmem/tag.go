package objmem

// Tag identifies the variant of a tagged object, a dense enum dispatched
// through a table the way surge's vm.ObjectKind keys Heap.alloc — but here
// the table lives one level up, in the evaluator, since size/render/parse
// all key off Tag alone (every tag's payload-length rule is fixed).
type Tag uint8

const (
	TagIntPos Tag = iota
	TagIntNeg
	TagBigPos
	TagBigNeg
	TagBasedBin
	TagBasedOct
	TagBasedDec
	TagBasedHex
	TagFractionPos
	TagFractionNeg
	TagDecimal32
	TagDecimal64
	TagDecimal128
	TagSymbol
	TagText
	TagComplexRect
	TagComplexPolar
	TagList
	TagArray
	TagMatrix
	TagProgram
	TagExpression
	TagFuncall
	TagLoop
	tagCount
)

// String names a tag for diagnostics.
func (t Tag) String() string {
	switch t {
	case TagIntPos:
		return "int+"
	case TagIntNeg:
		return "int-"
	case TagBigPos:
		return "big+"
	case TagBigNeg:
		return "big-"
	case TagBasedBin:
		return "based-bin"
	case TagBasedOct:
		return "based-oct"
	case TagBasedDec:
		return "based-dec"
	case TagBasedHex:
		return "based-hex"
	case TagFractionPos:
		return "fraction+"
	case TagFractionNeg:
		return "fraction-"
	case TagDecimal32:
		return "decimal32"
	case TagDecimal64:
		return "decimal64"
	case TagDecimal128:
		return "decimal128"
	case TagSymbol:
		return "symbol"
	case TagText:
		return "text"
	case TagComplexRect:
		return "complex-rect"
	case TagComplexPolar:
		return "complex-polar"
	case TagList:
		return "list"
	case TagArray:
		return "array"
	case TagMatrix:
		return "matrix"
	case TagProgram:
		return "program"
	case TagExpression:
		return "expression"
	case TagFuncall:
		return "funcall"
	case TagLoop:
		return "loop"
	default:
		return "tag?"
	}
}

// IsNumeric reports whether t is one of the integer/bignum/based families.
func (t Tag) IsNumeric() bool {
	switch t {
	case TagIntPos, TagIntNeg, TagBigPos, TagBigNeg,
		TagBasedBin, TagBasedOct, TagBasedDec, TagBasedHex,
		TagFractionPos, TagFractionNeg,
		TagDecimal32, TagDecimal64, TagDecimal128:
		return true
	default:
		return false
	}
}

// IsComposite reports whether t embeds child object byte-sequences inline
// (list/array/matrix/program/expression/funcall/loop), as opposed to an
// atomic payload.
func (t Tag) IsComposite() bool {
	switch t {
	case TagList, TagArray, TagMatrix, TagProgram, TagExpression, TagFuncall, TagLoop:
		return true
	default:
		return false
	}
}
