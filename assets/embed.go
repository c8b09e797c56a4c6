package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed banner.txt
var FS embed.FS

// readLines returns the file's lines, skipping blanks and "#" comments.
// Leading spaces survive; banner art needs them.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := sc.Text()
		if strings.TrimSpace(s) == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.TrimRight(s, " "))
	}
	return out, sc.Err()
}

// Banner returns the faceplate banner art.
func Banner() ([]string, error) {
	return readLines("banner.txt")
}
