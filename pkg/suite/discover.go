package suite

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Case is one conformance program: an input source and the exact output it
// must print.
type Case struct {
	// Name is the input path relative to the suite root, without extension.
	Name     string
	Title    string
	Input    string
	Expected string
}

// Discover walks root and returns every *.in file that has a sibling *.out.
// Inputs without expected output are skipped. Cases are ordered by
// directory, then by the numeric suffix of the file name so test2 precedes
// test10.
func Discover(root string) ([]Case, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite: %s is not a directory", root)
	}

	var cases []Case
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".in" {
			return nil
		}
		expected := strings.TrimSuffix(path, ".in") + ".out"
		if _, err := os.Stat(expected); err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		title, err := readTitle(path)
		if err != nil {
			return err
		}
		cases = append(cases, Case{
			Name:     filepath.ToSlash(strings.TrimSuffix(rel, ".in")),
			Title:    title,
			Input:    path,
			Expected: expected,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("suite: discover %s: %w", root, err)
	}

	sort.SliceStable(cases, func(i, j int) bool {
		return caseLess(cases[i].Name, cases[j].Name)
	})
	return cases, nil
}

// readTitle returns the text of a leading "#" comment line, if any.
func readTitle(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	line := strings.TrimSpace(scanner.Text())
	if !strings.HasPrefix(line, "#") {
		return "", nil
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "#")), nil
}

func caseLess(a, b string) bool {
	dirA, baseA := splitName(a)
	dirB, baseB := splitName(b)
	if dirA != dirB {
		return dirA < dirB
	}
	stemA, numA, okA := numericSuffix(baseA)
	stemB, numB, okB := numericSuffix(baseB)
	if okA && okB && stemA == stemB && numA != numB {
		return numA < numB
	}
	return baseA < baseB
}

func splitName(name string) (string, string) {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

func numericSuffix(name string) (string, int, bool) {
	end := len(name)
	start := end
	for start > 0 && name[start-1] >= '0' && name[start-1] <= '9' {
		start--
	}
	if start == end {
		return name, 0, false
	}
	n, err := strconv.Atoi(name[start:])
	if err != nil {
		return name, 0, false
	}
	return name[:start], n, true
}
