// Package library loads word lists from disk.
package library

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ext is the extension of list files in a library directory.
const Ext = ".txt"

// LoadDir reads every *.txt file in dir as a list named after the file's
// stem, one item per line. Empty files are skipped and each list is sorted.
func LoadDir(dir string) (map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	lists := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Ext {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read list: %w", err)
		}
		if len(data) == 0 {
			continue
		}
		items, err := readLines(data)
		if err != nil {
			return nil, fmt.Errorf("parse list %s: %w", path, err)
		}
		slices.Sort(items)
		lists[strings.TrimSuffix(entry.Name(), Ext)] = items
	}
	return lists, nil
}

func readLines(data []byte) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// LoadYAML reads a YAML document mapping list names to items:
//
//	color: [red, blue]
//	shape:
//	  - circle
//	  - square
//
// Items keep their order.
func LoadYAML(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lists: %w", err)
	}
	lists := make(map[string][]string)
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse lists %s: %w", path, err)
	}
	return lists, nil
}
