package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssetsDir is an extra directory searched after the local ones, set with -assets.
var AssetsDir string

func ResolveAssetPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}

	// Try local assets first
	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if AssetsDir != "" {
		extraPath := filepath.Join(AssetsDir, relPath)
		if _, err := os.Stat(extraPath); err == nil {
			return extraPath
		}
	}

	if _, err := os.Stat(relPath); err == nil {
		return relPath
	}

	return localPath // Fallback to local even if not exists
}

// FindTextureFile looks up a backdrop texture by name, trying the known
// texture extensions when the name has none.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	cleanName := strings.TrimPrefix(name, "materials/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	searchDirs := []string{
		".",
		"assets",
		"assets/materials",
		"assets/generated",
	}
	if AssetsDir != "" {
		searchDirs = append(searchDirs,
			AssetsDir,
			filepath.Join(AssetsDir, "materials"),
		)
	}

	extensions := []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tex"}

	for _, dir := range searchDirs {
		// Exact match if name already has extension
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		for _, ext := range extensions {
			p := filepath.Join(dir, cleanName+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	return ""
}

// ConfigSearchPaths lists where a config file without a directory is looked for.
func ConfigSearchPaths(name string) []string {
	paths := []string{name}
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
		return paths
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "artboard-wallpaper", name))
	}
	paths = append(paths, ResolveAssetPath(name))
	return paths
}
