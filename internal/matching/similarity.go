package matching

// Ratio computes character-level similarity between two strings as
// 2*M / T, where M is the total number of characters covered by common
// blocks (found by recursively locating the longest common substring and
// recursing into the unmatched flanks) and T is the combined length.
// This reproduces the sequence-matcher ratio the source loaders were tuned
// against; changing it shifts accepted/unmatched counts and requires
// re-validation.
//
// The arguments are put in canonical order before recursing. The block
// tie-break prefers the earliest block in the first argument, which would
// otherwise make the result depend on which side a name arrived on;
// Score(a, b) must equal Score(b, a).
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	if len(a) > len(b) || (len(a) == len(b) && a > b) {
		a, b = b, a
	}
	return 2 * float64(matchedChars(a, b)) / float64(total)
}

// matchedChars sums the sizes of all common blocks between a and b.
func matchedChars(a, b string) int {
	size, ai, bi := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedChars(a[:ai], b[:bi]) +
		matchedChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring of a and b,
// returning its length and start offsets. Ties go to the earliest block in
// a, then the earliest in b. Normalized names are ASCII, so byte offsets
// are character offsets.
func longestCommonBlock(a, b string) (size, ai, bi int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				cur[j+1] = 0
				continue
			}
			cur[j+1] = prev[j] + 1
			if cur[j+1] > size {
				size = cur[j+1]
				ai = i + 1 - size
				bi = j + 1 - size
			}
		}
		prev, cur = cur, prev
	}
	return size, ai, bi
}
