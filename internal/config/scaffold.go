package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateDir is the per-project directory holding session logs and state.
const StateDir = ".marquee"

// ScaffoldProject prepares dir for marquee. It creates marquee.toml, the
// session log directory, and a .gitignore entry excluding StateDir. Files
// that already exist are left untouched. Returns the list of created paths.
func ScaffoldProject(dir string) ([]string, error) {
	var created []string

	// marquee.toml
	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	// .marquee/logs
	logDir := filepath.Join(dir, StateDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(logDir, 0755); mkErr != nil {
			return created, fmt.Errorf("scaffold: create %s: %w", logDir, mkErr)
		}
		created = append(created, logDir)
	}

	// .gitignore
	gitignoreEntry := StateDir + "/"
	gitignorePath := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(gitignorePath, []byte(gitignoreEntry+"\n"), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	} else if err != nil {
		return created, fmt.Errorf("scaffold: read %s: %w", gitignorePath, err)
	} else if !hasLine(string(existing), gitignoreEntry) {
		content := string(existing)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content += "\n"
		}
		content += gitignoreEntry + "\n"
		if writeErr := os.WriteFile(gitignorePath, []byte(content), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	}

	return created, nil
}

// hasLine reports whether content has a line equal to entry, ignoring
// surrounding whitespace and a missing trailing slash.
func hasLine(content, entry string) bool {
	bare := strings.TrimSuffix(entry, "/")
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == entry || line == bare {
			return true
		}
	}
	return false
}
