package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/denisbrodbeck/machineid"
)

// State holds the settings remembered between sessions.
type State struct {
	Scenario  string `json:"scenario"`  // Path of the last scenario file, empty for the embedded one
	Algorithm string `json:"algorithm"` // Last algorithm override, empty to use the scenario's
	Mute      bool   `json:"mute"`      // Mute alert sounds
	Runs      int    `json:"runs"`      // Number of runs started on this machine
}

var encryptionKey = generateKey()

// generateKey creates a 32-byte AES key from system-specific data.
func generateKey() []byte {
	appID, err := machineid.ProtectedID("hideout")
	if err != nil {
		appID = "default-hideout-id" // Fallback if machine ID fails
	}
	sum := sha256.Sum256([]byte(appID))
	return sum[:]
}

func New() *State {
	return &State{}
}

// Save persists the state to the default location.
func (s *State) Save() error {
	path, err := getSavePath()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo persists the state to an encrypted file with an integrity check.
func (s *State) SaveTo(path string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}

	// Prepend CRC32 checksum
	crc := crc32.ChecksumIEEE(raw)
	data := make([]byte, 4+len(raw))
	binary.LittleEndian.PutUint32(data[:4], crc)
	copy(data[4:], raw)

	encrypted, err := encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, encrypted, 0644)
}

// Load reads the state from the default location.
func Load() *State {
	path, err := getSavePath()
	if err != nil {
		return New()
	}
	return LoadFrom(path)
}

// LoadFrom reads, decrypts and verifies a state file.
// Any failure yields a fresh state.
func LoadFrom(path string) *State {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		return New()
	}

	decrypted, err := decrypt(encrypted)
	if err != nil || len(decrypted) < 5 {
		return New()
	}

	crcStored := binary.LittleEndian.Uint32(decrypted[:4])
	payload := decrypted[4:]
	if crc32.ChecksumIEEE(payload) != crcStored {
		return New()
	}

	s := &State{}
	if err = json.Unmarshal(payload, s); err != nil {
		return New()
	}
	return s
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	return gcm.Open(nil, ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():], nil)
}

// getSavePath returns the path to the save file inside the user config directory.
func getSavePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	saveDir := filepath.Join(configDir, "hideout")
	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(saveDir, "state.dat"), nil
}
