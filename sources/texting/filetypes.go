package texting

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"chatmesh/sources/tracing"
)

const (
	CategoryImage = "IMAGE"
	CategoryAudio = "AUDIO"
	CategoryVideo = "VIDEO"
	CategoryText  = "TEXT"
)

// LoadFiletypes reads the category->extensions table and inverts it into an
// extension->category lookup used to pick link chip icons. Loaded once, read-only
// afterward.
func LoadFiletypes(log *tracing.Logger, path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filetypes table: %w", err)
	}

	var table map[string][]string
	if err := json.Unmarshal(content, &table); err != nil {
		return nil, fmt.Errorf("failed to parse filetypes table: %w", err)
	}

	byExtension := make(map[string]string)
	for category, extensions := range table {
		for _, extension := range extensions {
			byExtension[strings.ToLower(extension)] = category
		}
		log.I("Loaded filetype category", "category", category, "extensions", len(extensions))
	}

	return byExtension, nil
}
