package teastr

const (
	scrambleBase = 5
	chunkSize    = 8
)

// scrambleMultiplier returns 5 if it's coprime with count, otherwise the smallest larger multiplier that is.
// Being coprime is what makes (i*m) mod count a permutation of [0, count).
// Multipliers congruent to 1 are skipped since they would store blocks in linear order.
func scrambleMultiplier(count int) int {
	if count <= 1 || gcd(scrambleBase, count) == 1 {
		return scrambleBase
	}
	m := scrambleBase + 1
	for gcd(m, count) != 1 || m%count == 1 {
		m++
	}
	return m
}

// scrambleOrder returns the storage index visited at each construction step.
func scrambleOrder(count int) []int {
	order := make([]int, count)
	m := scrambleMultiplier(count)
	for i := range order {
		order[i] = (i * m) % count
	}
	return order
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// blockCountFor returns ceil((length-1)/8), the number of blocks needed for a literal of the given length including its terminator.
func blockCountFor(length int) int {
	return (length - 1 + chunkSize - 1) / chunkSize
}
