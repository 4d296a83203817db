package conrep

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// DefaultHWDef is where the hp-scripting-tools package installs the
// stock hardware definition file.
const DefaultHWDef = "/opt/hp/hp-scripting-tools/etc/conrep.xml"

// ParseDocument extracts the section name → payload mapping from a
// conrep system configuration dump. A section's payload is its text,
// or, when the section has child elements, the concatenation of their
// serialized markup: conrep treats some settings as embedded sub-XML
// and that structure must survive verbatim.
func ParseDocument(raw string) (map[string]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, fmt.Errorf("parsing conrep document: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("conrep document has no root element")
	}

	settings := make(map[string]string)
	for _, section := range root.ChildElements() {
		if section.Tag != "Section" {
			continue
		}
		name := section.SelectAttrValue("name", "")
		children := section.ChildElements()
		if len(children) == 0 {
			settings[name] = section.Text()
			continue
		}
		var payload strings.Builder
		for _, child := range children {
			markup, err := serializeElement(child)
			if err != nil {
				return nil, fmt.Errorf("serializing section %q: %w", name, err)
			}
			payload.WriteString(markup)
		}
		settings[name] = payload.String()
	}
	return settings, nil
}

// Render produces the replacement document fed to conrep's load path.
// It wraps only the changed sections; conrep leaves unspecified
// sections unchanged. Payloads are emitted verbatim since they may be
// raw sub-markup.
func Render(changed map[string]string) string {
	names := make([]string, 0, len(changed))
	for name := range changed {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("<Conrep>\n")
	for _, name := range names {
		fmt.Fprintf(&b, "<Section name=\"%s\">%s</Section>\n", name, changed[name])
	}
	b.WriteString("</Conrep>\n")
	return b.String()
}

func serializeElement(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	return doc.WriteToString()
}
