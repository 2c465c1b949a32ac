package alfred

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// Format selects the script filter output dialect.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "xml" or "json".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected xml or json)", s)
}

// Render writes items to w in format f.
func Render(w io.Writer, f Format, items []Item) error {
	switch f {
	case FormatJSON:
		return RenderJSON(w, items)
	case FormatXML, "":
		return RenderXML(w, items)
	}
	return fmt.Errorf("unknown output format %q", f)
}

type xmlItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []xmlItem `xml:"item"`
}

type xmlItem struct {
	UID      string `xml:"uid,attr"`
	Arg      string `xml:"arg,attr,omitempty"`
	Valid    string `xml:"valid,attr"`
	Icon     string `xml:"icon,omitempty"`
	Title    string `xml:"title"`
	Subtitle string `xml:"subtitle"`
}

// RenderXML writes the legacy Alfred XML document.
func RenderXML(w io.Writer, items []Item) error {
	doc := xmlItems{Items: make([]xmlItem, 0, len(items))}
	for _, it := range items {
		valid := "no"
		if it.Valid {
			valid = "yes"
		}
		doc.Items = append(doc.Items, xmlItem{
			UID:      it.UID,
			Arg:      it.Arg,
			Valid:    valid,
			Icon:     it.Icon,
			Title:    it.Title,
			Subtitle: it.Subtitle,
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("cannot encode items: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type jsonIcon struct {
	Path string `json:"path"`
}

type jsonItem struct {
	UID      string    `json:"uid"`
	Arg      string    `json:"arg,omitempty"`
	Valid    bool      `json:"valid"`
	Icon     *jsonIcon `json:"icon,omitempty"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
}

// RenderJSON writes the Alfred JSON document ({"items": [...]}).
func RenderJSON(w io.Writer, items []Item) error {
	out := struct {
		Items []jsonItem `json:"items"`
	}{Items: make([]jsonItem, 0, len(items))}
	for _, it := range items {
		ji := jsonItem{
			UID:      it.UID,
			Arg:      it.Arg,
			Valid:    it.Valid,
			Title:    it.Title,
			Subtitle: it.Subtitle,
		}
		if it.Icon != "" {
			ji.Icon = &jsonIcon{Path: it.Icon}
		}
		out.Items = append(out.Items, ji)
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("cannot encode items: %w", err)
	}
	return nil
}
