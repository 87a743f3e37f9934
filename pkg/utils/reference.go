package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const referenceCharacters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReference builds a human friendly code such as "CNS-7KQ2M9XA".
// Ambiguous characters (0/O, 1/I) are left out.
func GenerateReference(prefix string) (string, error) {
	code, err := gonanoid.Generate(referenceCharacters, 8)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(prefix) + "-" + code, nil
}
