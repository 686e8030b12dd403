package deflate

// Fixed and length/distance tables per RFC 1951 §3.2.5, §3.2.6.

// lengthBase and lengthExtra give, for length symbols 257..285 (indexed
// 0..28), the base length and number of extra bits to add to it.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distanceBase and distanceExtra give, for distance symbols 0..29, the
// base distance and number of extra bits to add to it. Symbols 30 and 31
// never appear in a valid distance code.
var distanceBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distanceExtra = [30]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

// clcOrder is the permutation in which the 19 code-length-alphabet code
// lengths are stored in a dynamic block header.
var clcOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

const (
	numLitLenSymbols  = 288
	numDistSymbols    = 32
	numCodeLenSymbols = 19
	endOfBlockSymbol  = 256
)

// fixedLitLenLengths builds the 288-entry code-length vector for the
// fixed literal/length tree (RFC 1951 §3.2.6).
func fixedLitLenLengths() []int {
	bl := make([]int, numLitLenSymbols)
	for i := 0; i <= 143; i++ {
		bl[i] = 8
	}
	for i := 144; i <= 255; i++ {
		bl[i] = 9
	}
	for i := 256; i <= 279; i++ {
		bl[i] = 7
	}
	for i := 280; i <= 287; i++ {
		bl[i] = 8
	}
	return bl
}

// fixedDistLengths builds the 32-entry code-length vector for the fixed
// distance tree: every distance code is 5 bits.
func fixedDistLengths() []int {
	bl := make([]int, numDistSymbols)
	for i := range bl {
		bl[i] = 5
	}
	return bl
}
