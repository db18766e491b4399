package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const HashVersionBcrypt = "bcrypt"

// Fixture accounts are re-hashed on every start-up.
const hashCost = bcrypt.MinCost

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

func hashPassword(password string) (hash string, version string, err error) {
	switch {
	case password == "":
		return "", "", errors.New("empty password")
	case len(password) > maxPasswordBytes:
		return "", "", fmt.Errorf("password longer than %d bytes", maxPasswordBytes)
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", "", err
	}

	return string(b), HashVersionBcrypt, nil
}

func verifyPassword(acc Account, password string) error {
	if acc.HashVersion != HashVersionBcrypt {
		return fmt.Errorf("unsupported hash version %q", acc.HashVersion)
	}
	return bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password))
}
