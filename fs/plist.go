package fs

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
)

// Info holds the Info.plist keys of a docset bundle.
type Info struct {
	// Name is CFBundleName, the display name of the docset.
	Name string

	// Family is DashDocSetFamily, e.g. "python" or "dashtoc".
	Family string
}

// ReadInfo reads the Info.plist file at path.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("parsing Info.plist: %w", err)
	}

	dict := doc.FindElement("./plist/dict")
	if dict == nil {
		return nil, fmt.Errorf("no top-level dict in Info.plist")
	}

	values := parseDict(dict)
	return &Info{
		Name:   values["CFBundleName"],
		Family: values["DashDocSetFamily"],
	}, nil
}

// parseDict returns the string values of a plist <dict>. Each <key> is
// paired with the element that follows it; non-string values are skipped.
func parseDict(dict *etree.Element) map[string]string {
	values := make(map[string]string)
	children := dict.ChildElements()
	for i := 0; i+1 < len(children); i++ {
		if children[i].Tag != "key" {
			continue
		}
		key := strings.TrimSpace(children[i].Text())
		value := children[i+1]
		i++
		if value.Tag != "string" {
			continue
		}
		values[key] = strings.TrimSpace(value.Text())
	}
	return values
}
