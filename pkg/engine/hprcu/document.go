package hprcu

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/gsbios/biosctl/pkg/engine"
)

// FeatureKind discriminates the two recognized feature shapes.
type FeatureKind int

const (
	// FeatureOption is a closed set of named choices, each with a
	// stable identifier; exactly one is selected.
	FeatureOption FeatureKind = iota

	// FeatureString is a free-text value.
	FeatureString
)

// Option is one choice of an option feature.
type Option struct {
	ID   string
	Name string
}

// Feature is one hprcu setting record. Identity is ID; Name is the
// human-facing lookup key used in desired-state mappings. Kind is
// fixed for the lifetime of a document; only SelectedOptionID or
// Value change.
type Feature struct {
	ID               string
	Name             string
	Kind             FeatureKind
	Options          []Option
	SelectedOptionID string
	Value            string
}

// Document is a parsed hprcu settings dump. The underlying XML is kept
// so the whole document, vendor attributes included, round-trips
// verbatim through the apply path.
type Document struct {
	doc      *etree.Document
	features []Feature
}

// ParseDocument parses a raw hprcu dump into an ordered feature
// sequence. A feature_type discriminator other than "option" or
// "string" fails with UnknownFeatureTypeError.
func ParseDocument(raw string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, fmt.Errorf("parsing hprcu document: %w", err)
	}
	return fromDoc(doc)
}

func fromDoc(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("hprcu document has no root element")
	}

	var features []Feature
	for _, el := range root.ChildElements() {
		if el.Tag != "feature" {
			continue
		}
		f := Feature{
			ID:   el.SelectAttrValue("feature_id", ""),
			Name: elementText(el.FindElement("feature_name")),
		}
		switch kind := el.SelectAttrValue("feature_type", ""); kind {
		case "option":
			f.Kind = FeatureOption
			f.SelectedOptionID = el.SelectAttrValue("selected_option_id", "")
			for _, opt := range el.ChildElements() {
				if opt.Tag != "option" {
					continue
				}
				f.Options = append(f.Options, Option{
					ID:   opt.SelectAttrValue("option_id", ""),
					Name: elementText(opt.FindElement("option_name")),
				})
			}
		case "string":
			f.Kind = FeatureString
			f.Value = elementText(el.FindElement("feature_value"))
		default:
			return nil, &engine.UnknownFeatureTypeError{FeatureType: kind, Feature: f.Name}
		}
		features = append(features, f)
	}
	return &Document{doc: doc, features: features}, nil
}

// Features returns the ordered feature view.
func (d *Document) Features() []Feature { return d.features }

// String serializes the document back to XML.
func (d *Document) String() string {
	s, _ := d.doc.WriteToString()
	return s
}

// ApplyEdits builds a new document with desired applied; the receiver
// is never modified. It reports whether any selected option id or
// string value actually changed. Unknown desired names are collected
// across the whole mapping and reported together, after every match
// was attempted.
func (d *Document) ApplyEdits(desired map[string]string) (*Document, bool, error) {
	target, err := fromDoc(d.doc.Copy())
	if err != nil {
		return nil, false, err
	}

	changed := false
	matched := make(map[string]bool, len(desired))
	index := 0
	for _, el := range target.doc.Root().ChildElements() {
		if el.Tag != "feature" {
			continue
		}
		f := &target.features[index]
		index++

		want, ok := desired[f.Name]
		if !ok {
			continue
		}
		matched[f.Name] = true

		switch f.Kind {
		case FeatureOption:
			optionID := ""
			for _, opt := range f.Options {
				if opt.Name == want {
					optionID = opt.ID
					break
				}
			}
			if optionID == "" {
				state, _ := serializeElement(el)
				return nil, false, &engine.UnknownOptionValueError{
					Feature: f.Name,
					Value:   want,
					State:   state,
				}
			}
			if f.SelectedOptionID != optionID {
				changed = true
			}
			f.SelectedOptionID = optionID
			el.CreateAttr("selected_option_id", optionID)
		case FeatureString:
			if f.Value != want {
				changed = true
			}
			f.Value = want
			value := el.FindElement("feature_value")
			if value == nil {
				value = el.CreateElement("feature_value")
			}
			value.SetText(want)
		}
	}

	if len(matched) != len(desired) {
		missing := make([]string, 0, len(desired)-len(matched))
		for name := range desired {
			if !matched[name] {
				missing = append(missing, name)
			}
		}
		sort.Strings(missing)
		return nil, false, &engine.UnknownSettingError{Backend: "hprcu", Keys: missing}
	}
	return target, changed, nil
}

// CanonicalMap flattens the document to feature_id → selected option
// id or string value, the shape used for change detection between two
// raw documents.
func (d *Document) CanonicalMap() map[string]string {
	canonical := make(map[string]string, len(d.features))
	for _, f := range d.features {
		switch f.Kind {
		case FeatureOption:
			canonical[f.ID] = f.SelectedOptionID
		case FeatureString:
			canonical[f.ID] = f.Value
		}
	}
	return canonical
}

// Facts renders name → display value; option features resolve through
// their selected option's display name. A nil document yields an empty
// mapping.
func (d *Document) Facts() map[string]string {
	facts := make(map[string]string)
	if d == nil {
		return facts
	}
	for _, f := range d.features {
		switch f.Kind {
		case FeatureOption:
			for _, opt := range f.Options {
				if opt.ID == f.SelectedOptionID {
					facts[f.Name] = opt.Name
					break
				}
			}
		case FeatureString:
			facts[f.Name] = f.Value
		}
	}
	return facts
}

func elementText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Text()
}

func serializeElement(el *etree.Element) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	return doc.WriteToString()
}
