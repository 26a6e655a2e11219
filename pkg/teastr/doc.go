/*
Package teastr provides build-time obfuscation of string literals using a 64 round TEA block cipher.

Note that this is NOT encryption in any meaningful sense, since the key is embedded right next to the cipher text.
This falls squarely under the obfuscation category, and is intended to prevent trivial extraction of sensitive constants with tools like strings.

# How it works:

A Seed of four 32-bit values is permuted into a 128-bit Key with GenerateKey.
By default the seed is taken from the characters of the build clock (see DefaultSeed), so distinct builds tend to embed distinct keys.

Make splits a literal into 8 byte chunks, packs each chunk little-endian into two 32-bit words, and encrypts the pair with EncryptBlock.
The resulting blocks are stored out of linear order, visiting chunk (i*m) mod blockCount at step i.
The multiplier m is 5 unless that would share a factor with the block count, in which case the next coprime multiplier is used, so every chunk always has exactly one slot.

At runtime, a Container is decrypted by visiting the blocks in the same order, which reconstructs the original bytes followed by a zero terminator.

# Build time:

Go can't evaluate Make in a constant context, so the teagen command runs it during go:generate and writes the key and blocks as fixed size array literals.
The generated code calls MustRestore at package initialization and exposes an accessor function for each literal.

# General guidelines:
  - Use a Decrypter per goroutine when decrypting often, the returned slice is only valid until the next call on the same Decrypter.
  - Container.Decrypt allocates a new string, and is safe for concurrent use.
  - Use SeedFromPassphrase or SOURCE_DATE_EPOCH when reproducible builds matter more than a per-build key.
*/
package teastr
