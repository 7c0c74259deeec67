package axis

import "strconv"

// ParseFloatList parses up to len(result) numeric tokens from input into
// result, left to right, one position at a time. Tokens are separated by
// exactly one delimiter character (conventionally a comma; any single
// character works). It returns the number of values parsed.
//
// At each position the longest numeric prefix of the remaining input is
// taken. If the input ends right after a number, parsing stops there and
// the count covers only the positions written so far; trailing positions
// keep whatever the caller pre-seeded them with. A token that does not
// start with a number makes the whole call fail with count 0, even when
// earlier positions already parsed (and were written). Callers must not
// use the output after a zero return.
func ParseFloatList(input string, result []float64) int {
	for i := range result {
		v, n := scanFloat(input)
		if n == 0 {
			return 0
		}
		result[i] = v
		if n == len(input) {
			return i + 1
		}
		// Skip the single delimiter character after the number.
		input = input[n+1:]
	}
	return len(result)
}

// scanFloat parses the longest prefix of s that forms a decimal floating
// point number and returns its value and length. A zero length means no
// number starts at s.
func scanFloat(s string) (float64, int) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, 0
	}
	// Optional exponent; only consumed if well-formed, like strtod.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, 0
	}
	return v, i
}
