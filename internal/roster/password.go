package roster

import (
	"crypto/rand"
	"math/big"

	"hostelcare/backend/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// GeneratePassword returns a random alphanumeric password for a new account.
func GeneratePassword() (string, error) {
	charset := config.GeneratedPasswordCharset
	limit := big.NewInt(int64(len(charset)))
	buf := make([]byte, config.GeneratedPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
