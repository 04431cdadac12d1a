package geohash

import "fmt"

const (
	alphabet    = "0123456789bcdefghjkmnpqrstuvwxyz"
	bitsPerChar = 5
	charMask    = 1<<bitsPerChar - 1
	invalidChar = 0xff
)

// decodeTable maps an ASCII byte to its 5-bit value, or invalidChar.
var decodeTable = func() [256]byte {
	var table [256]byte
	for i := range table {
		table[i] = invalidChar
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		table[c] = byte(i)
		if c >= 'a' && c <= 'z' {
			table[c-'a'+'A'] = byte(i)
		}
	}
	return table
}()

// charToBits5 returns the 5-bit group for a geohash character, case-insensitively.
func charToBits5(c byte) (uint64, error) {
	v := decodeTable[c]
	if v == invalidChar {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCharacter, c)
	}
	return uint64(v), nil
}

// bits5ToChar returns the character for a 5-bit group. v must be below 32.
func bits5ToChar(v uint64) byte {
	return alphabet[v&charMask]
}

// Valid reports whether hash is a non-empty string of geohash characters.
func Valid(hash string) bool {
	if hash == "" {
		return false
	}
	for i := 0; i < len(hash); i++ {
		if decodeTable[hash[i]] == invalidChar {
			return false
		}
	}
	return true
}

// stringToInt packs a string hash of at most maxIntChars characters into its integer form.
func stringToInt(hash string) (uint64, uint, error) {
	if hash == "" {
		return 0, 0, fmt.Errorf("%w: empty geohash", ErrInvalidInput)
	}
	if len(hash) > maxIntChars {
		return 0, 0, fmt.Errorf("%w: geohash %q longer than %d characters", ErrInvalidPrecision, hash, maxIntChars)
	}
	var code uint64
	for i := 0; i < len(hash); i++ {
		v, err := charToBits5(hash[i])
		if err != nil {
			return 0, 0, err
		}
		code = code<<bitsPerChar | v
	}
	return code, uint(len(hash)) * bitsPerChar, nil
}

// intToString unpacks the integer form back into chars characters, most significant group first.
func intToString(code uint64, chars int) string {
	buf := make([]byte, chars)
	for i := chars - 1; i >= 0; i-- {
		buf[i] = bits5ToChar(code)
		code >>= bitsPerChar
	}
	return string(buf)
}
