// Package missing recognizes the text tokens that input files use for an
// absent value.
package missing

// Tokens are the cell values read as missing
var Tokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Is reports whether cell is one of Tokens
func Is(cell string) bool {
	for _, tok := range Tokens {
		if cell == tok {
			return true
		}
	}
	return false
}
