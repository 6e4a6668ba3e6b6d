package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// The pepper is a server-side secret appended to every password before
// hashing. It lives in a file outside the database, so a dumped users table
// alone is not enough to mount an offline attack.
var (
	pepperOnce sync.Once
	pepperVal  string
	pepperFile = "pepper"
)

// SetPepperPath points the package at the pepper file. Must be called before
// the first hash or verify.
func SetPepperPath(file string) {
	pepperFile = file
}

// GetPepper returns the pepper, loading it from the configured file on first
// use and generating a fresh one if the file does not exist yet. A pepper
// that cannot be loaded or created is fatal: hashing without it would write
// unverifiable hashes.
func GetPepper() string {
	pepperOnce.Do(func() {
		val, err := loadOrCreatePepper()
		if err != nil {
			slog.Error("pepper unavailable", slog.Any("err", err))
			os.Exit(1)
		}
		pepperVal = val
	})
	return pepperVal
}

func loadOrCreatePepper() (string, error) {
	path := filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	val := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(path, []byte(val), 0600); err != nil {
		return "", err
	}
	return val, nil
}
