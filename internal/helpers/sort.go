package helpers

// NaturalLess compares two strings treating digit runs as numbers, so
// "img2" sorts before "img10". Numeric value wins first; for equal values
// the run with fewer leading zeros wins; everything else compares bytewise.
func NaturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			valA, lenA, nextI := digitRun(a, i)
			valB, lenB, nextJ := digitRun(b, j)

			if len(valA) != len(valB) {
				return len(valA) < len(valB)
			}
			if valA != valB {
				return valA < valB
			}
			if lenA != lenB {
				return lenA < lenB
			}
			i, j = nextI, nextJ
			continue
		}

		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// digitRun extracts the digit run starting at i: its value with leading
// zeros stripped, the total run length, and the index past the run.
func digitRun(s string, i int) (value string, runLen, next int) {
	start := i
	for i < len(s) && s[i] == '0' {
		i++
	}
	valStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[valStart:i], i - start, i
}
