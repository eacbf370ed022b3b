package security

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// InternalKey authenticates the maintenance endpoint against this service's
// own background trigger. It is generated locally on first start and never
// leaves the host.
type InternalKey struct {
	value string
}

func LoadOrCreateInternalKey(path string) (*InternalKey, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key := strings.TrimSpace(string(data))
		if key != "" {
			return &InternalKey{value: key}, nil
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read internal key: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate internal key: %w", err)
	}
	key := hex.EncodeToString(raw)

	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist internal key: %w", err)
	}

	return &InternalKey{value: key}, nil
}

func (k *InternalKey) Value() string {
	return k.value
}

// Verify compares in constant time.
func (k *InternalKey) Verify(candidate string) bool {
	return hmac.Equal([]byte(k.value), []byte(candidate))
}
