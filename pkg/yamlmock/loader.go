package yamlmock

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/netstub/netstub/pkg/httpmock"
	"github.com/netstub/netstub/pkg/tcpmock"
	"github.com/netstub/netstub/pkg/validate"
)

// Document is a parsed and validated YAML mock declaration set, ready
// to be registered against live listeners.
type Document struct {
	http []map[string]any
	tcp  []map[string]any
}

// Parse decodes and validates a YAML document. Validation failures are
// returned as a *validate.Error with every issue found.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yamlmock: parsing YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	conformed, issues := documentSchema()(raw, nil)
	if len(issues) > 0 {
		return nil, &validate.Error{Issues: issues}
	}
	m := conformed.(map[string]any)

	doc := &Document{}
	for _, v := range asSlice(m["http"]) {
		doc.http = append(doc.http, asMap(v))
	}
	for _, v := range asSlice(m["tcp"]) {
		doc.tcp = append(doc.tcp, asMap(v))
	}
	return doc, nil
}

// ParseFile reads path and calls Parse on its contents.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlmock: reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("yamlmock: %s: %w", path, err)
	}
	return doc, nil
}

// ParseGlob reads every file matching pattern (supporting ** via
// doublestar) and merges their documents, in sorted filename order.
func ParseGlob(pattern string) (*Document, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("yamlmock: expanding glob %s: %w", pattern, err)
	}
	sort.Strings(matches)

	merged := &Document{}
	for _, path := range matches {
		doc, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		merged.http = append(merged.http, doc.http...)
		merged.tcp = append(merged.tcp, doc.tcp...)
	}
	return merged, nil
}

// RegisterHTTP registers every HTTP mock in the document against l,
// returning one handle per mock in declaration order.
func (d *Document) RegisterHTTP(l *httpmock.HTTPListener) ([]*httpmock.HTTPMockHandle, error) {
	handles := make([]*httpmock.HTTPMockHandle, 0, len(d.http))
	for i, m := range d.http {
		h, err := l.Mock(buildHTTPOptions(m))
		if err != nil {
			return nil, fmt.Errorf("yamlmock: http[%d]: %w", i, err)
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// RegisterTCP registers every TCP mock in the document against l. A
// mock carrying a "then" list registers its tail mocks pinned to the
// same head via TCPMockHandle.Mock, mirroring the Go API's pinning
// pattern.
func (d *Document) RegisterTCP(l *tcpmock.TCPListener) ([]*tcpmock.TCPMockHandle, error) {
	handles := make([]*tcpmock.TCPMockHandle, 0, len(d.tcp))
	for i, m := range d.tcp {
		head, err := l.Mock(buildTCPOptions(m))
		if err != nil {
			return nil, fmt.Errorf("yamlmock: tcp[%d]: %w", i, err)
		}
		handles = append(handles, head)

		for j, tail := range asSlice(m["then"]) {
			tailOpts := buildTCPOptions(asMap(tail))
			tailHandle, err := head.Mock(tailOpts)
			if err != nil {
				return nil, fmt.Errorf("yamlmock: tcp[%d].then[%d]: %w", i, j, err)
			}
			handles = append(handles, tailHandle)
		}
	}
	return handles, nil
}
