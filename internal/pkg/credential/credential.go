// Package credential builds employee login identifiers and temporary passwords.
package credential

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// DefaultPasswordLength is the length of temporary passwords issued to new employees.
const DefaultPasswordLength = 12

// PasswordAlphabet is the character set temporary passwords are drawn from.
const PasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%"

var ErrInvalidPasswordLength = errors.New("password length must be positive")

// GenerateLoginID formats a login identifier as
// PREFIX + first two letters of each name (upper-cased) + year + serial padded to four digits.
//
//	GenerateLoginID("OI", "Jo", "Do", 2022, 1) == "OIJODO20220001"
//
// Names shorter than two letters contribute what they have; nothing is padded.
func GenerateLoginID(companyPrefix, firstName, lastName string, year, serial int) string {
	return fmt.Sprintf("%s%s%s%d%04d",
		companyPrefix,
		namePrefix(firstName),
		namePrefix(lastName),
		year,
		serial,
	)
}

// AdminLoginID is the identifier given to the administrator created at sign-up.
func AdminLoginID(companyPrefix string) string {
	return companyPrefix + "ADMIN001"
}

// CompanyPrefix derives the default prefix from the first two ASCII letters of a
// company name, skipping spaces, digits and punctuation. Names with fewer than two
// such letters yield a shorter result that callers must reject.
func CompanyPrefix(companyName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(companyName) {
		if r < 'A' || r > 'Z' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 2 {
			break
		}
	}
	return b.String()
}

func namePrefix(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// GenerateRandomPassword draws length characters uniformly from PasswordAlphabet
// using crypto/rand.
func GenerateRandomPassword(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidPasswordLength
	}

	max := big.NewInt(int64(len(PasswordAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		buf[i] = PasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
