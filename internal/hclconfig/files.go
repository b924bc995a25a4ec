package hclconfig

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// configExtensions are the file suffixes picked up when walking a directory.
var configExtensions = []string{".hcl", ".json"}

// findConfigFiles returns root itself when it is a file, or every
// configuration file below it in lexical order when it is a directory.
func findConfigFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasConfigExtension(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func hasConfigExtension(name string) bool {
	for _, ext := range configExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func isJSON(path string) bool {
	return strings.HasSuffix(path, ".json")
}
