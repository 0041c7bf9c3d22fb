package config

import (
	"os"
	"strings"
)

// LoadChannelID reads the configured venue from the channel file: the first
// non-blank line, trimmed. A missing file means no venue is configured yet
// and returns "".
func LoadChannelID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", nil
}

// SaveChannelID rewrites the channel file with the given venue id.
func SaveChannelID(path, channelID string) error {
	return os.WriteFile(path, []byte(channelID+"\n"), 0o644)
}

// ClearChannelID empties the channel file, unconfiguring the venue.
func ClearChannelID(path string) error {
	return os.WriteFile(path, nil, 0o644)
}
