package recoder

// Sentinel replaces every missing cell. It marks a state that did not exist
// or did not vote in that year.
const Sentinel = "6"

// Code returns the numeric code for a party abbreviation. The mapping is
// fixed: D=0, R=1, I=2, SR=3, AI=4, PR=5.
func Code(party string) (string, bool) {
	switch party {
	case "D":
		return "0", true
	case "R":
		return "1", true
	case "I":
		return "2", true
	case "SR":
		return "3", true
	case "AI":
		return "4", true
	case "PR":
		return "5", true
	default:
		return "", false
	}
}

// Parties lists the known abbreviations in code order
func Parties() []string {
	return []string{"D", "R", "I", "SR", "AI", "PR"}
}
