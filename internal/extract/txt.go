package extract

import (
	"os"
	"strings"
	"unicode/utf8"
)

// readTXT reads a file as UTF-8, dropping invalid byte sequences.
func readTXT(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
