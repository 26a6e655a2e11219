package teastr

const (
	// Delta is the golden ratio derived round constant.
	Delta uint32 = 0x9e3779b9
	// Rounds is the number of Feistel rounds applied to each block.
	Rounds = 64

	// decryptSum is Delta * Rounds, truncated to 32 bits.
	decryptSum uint32 = 0x8dde6e40
)

// EncryptBlock encrypts the word pair (v0, v1) with key.
// The result packs v0 into the high 32 bits and v1 into the low 32 bits.
func EncryptBlock(v0, v1 uint32, key Key) uint64 {
	var sum uint32
	for i := 0; i < Rounds; i++ {
		sum += Delta
		v0 += ((v1 << 4) + key[0]) ^ (v1 + sum) ^ ((v1 >> 5) + key[1])
		v1 += ((v0 << 4) + key[2]) ^ (v0 + sum) ^ ((v0 >> 5) + key[3])
	}
	return joinBlock(v0, v1)
}

// DecryptBlock reverses EncryptBlock for the same key.
func DecryptBlock(v0, v1 uint32, key Key) uint64 {
	sum := decryptSum
	for i := 0; i < Rounds; i++ {
		v1 -= ((v0 << 4) + key[2]) ^ (v0 + sum) ^ ((v0 >> 5) + key[3])
		v0 -= ((v1 << 4) + key[0]) ^ (v1 + sum) ^ ((v1 >> 5) + key[1])
		sum -= Delta
	}
	return joinBlock(v0, v1)
}

func joinBlock(v0, v1 uint32) uint64 {
	return uint64(v0)<<32 | uint64(v1)
}

func splitBlock(block uint64) (v0, v1 uint32) {
	return uint32(block >> 32), uint32(block)
}
