package platform

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"fyne.io/fyne/v2"
)

// URI scheme accepted from drops and pasted uri-lists
const FileScheme = "file"

// uri-list comment prefix (RFC 2483)
const uriListComment = "#"

// "/C:/Music" as produced by file URIs on Windows
var windowsDrivePath = regexp.MustCompile(`^/[A-Za-z]:/`)

// PathsFromURIs keeps the local file paths of dropped URIs, in drop order
func PathsFromURIs(uris []fyne.URI) []string {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u == nil || u.Scheme() != FileScheme {
			continue
		}
		if p := u.Path(); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// ParseDropList extracts file paths from text pasted or dropped as text.
// Each non-empty line is either a file:// URI (text/uri-list) or a plain
// path. Comment lines and URIs with other schemes are skipped.
func ParseDropList(text string) []string {
	var paths []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, uriListComment) {
			continue
		}

		if !strings.Contains(line, "://") {
			paths = append(paths, line)
			continue
		}

		u, err := url.Parse(line)
		if err != nil || u.Scheme != FileScheme || u.Path == "" {
			continue
		}
		p := u.Path
		if windowsDrivePath.MatchString(p) {
			p = p[1:]
		}
		paths = append(paths, filepath.FromSlash(p))
	}
	return paths
}
