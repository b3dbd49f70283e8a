package platform

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultChannels is the built-in source set used when no channel file is
// provided.
var DefaultChannels = []string{
	"https://www.youtube.com/@Allprocessofworld_shorts/shorts",
	"https://www.youtube.com/@TechOnlineShow/shorts",
	"https://www.youtube.com/@Craftsman_Vlog/shorts",
	"https://www.youtube.com/@BestWorkingDay/shorts",
	"https://www.youtube.com/@craftsmanclips/shorts",
	"https://www.youtube.com/@SiragusaMatranga/shorts",
	"https://www.youtube.com/@CraftsmanVision/shorts",
	"https://www.youtube.com/@amazingskills012/shorts",
	"https://www.youtube.com/@Amazing-Making-Process/shorts",
	"https://www.youtube.com/@wisdompouchannel/shorts",
	"https://www.youtube.com/@Deliciousfood-sr1di/shorts",
	"https://www.youtube.com/@theworldspins/shorts",
	"https://www.youtube.com/@CraftsmanWhale/shorts",
	"https://www.youtube.com/@hardworkingday/shorts",
}

// LoadChannelsFromFile reads channel URLs from a text file, one per line.
// Blank lines are ignored and surrounding whitespace is trimmed.
func LoadChannelsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening channel list: %w", err)
	}
	defer f.Close()

	var channels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		channels = append(channels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading channel list: %w", err)
	}
	return channels, nil
}
