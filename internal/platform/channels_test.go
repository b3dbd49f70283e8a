package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadChannelsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.txt")
	content := "https://www.youtube.com/@one/shorts\n\n  https://www.youtube.com/@two/shorts  \n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write channel file: %v", err)
	}

	channels, err := LoadChannelsFromFile(path)
	if err != nil {
		t.Fatalf("LoadChannelsFromFile failed: %v", err)
	}

	if len(channels) != 2 {
		t.Fatalf("Expected 2 channels, got %d: %v", len(channels), channels)
	}
	if channels[0] != "https://www.youtube.com/@one/shorts" {
		t.Errorf("Unexpected first channel: %s", channels[0])
	}
	if channels[1] != "https://www.youtube.com/@two/shorts" {
		t.Errorf("Expected trimmed second channel, got: %s", channels[1])
	}
}

func TestLoadChannelsFromFile_Missing(t *testing.T) {
	_, err := LoadChannelsFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultChannels(t *testing.T) {
	if len(DefaultChannels) == 0 {
		t.Fatal("DefaultChannels is empty")
	}
	for _, c := range DefaultChannels {
		if c == "" {
			t.Error("DefaultChannels contains an empty entry")
		}
	}
}
