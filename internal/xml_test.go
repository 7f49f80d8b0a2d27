package internal

import (
	"encoding/xml"
	"testing"
)

const rawXML = `<summary><parameters><language><text>en</text></language></parameters><text>Lunch &amp; learn</text></summary>`

func TestRawXMLValue(t *testing.T) {
	var rawValue RawXMLValue
	if err := xml.Unmarshal([]byte(rawXML), &rawValue); err != nil {
		t.Fatalf("xml.Unmarshal() = %v", err)
	}

	b, err := xml.Marshal(&rawValue)
	if err != nil {
		t.Fatalf("xml.Marshal() = %v", err)
	}

	if s := string(b); s != rawXML {
		t.Errorf("input doesn't match output:\n%v\nvs.\n%v", rawXML, s)
	}
}

func TestRawXMLValue_build(t *testing.T) {
	params := NewRawXMLElement(xml.Name{Local: "parameters"}, nil, []RawXMLValue{
		*NewRawXMLElement(xml.Name{Local: "language"}, nil, []RawXMLValue{
			NewRawXMLTextElement("text", "en"),
		}),
	})
	root := NewRawXMLElement(xml.Name{Local: "summary"}, nil, []RawXMLValue{
		*params,
		NewRawXMLTextElement("text", "Lunch & learn"),
	})

	b, err := xml.Marshal(root)
	if err != nil {
		t.Fatalf("xml.Marshal() = %v", err)
	}
	if s := string(b); s != rawXML {
		t.Errorf("xml.Marshal() = %v, want %v", s, rawXML)
	}
}

func TestRawXMLValue_walk(t *testing.T) {
	var rawValue RawXMLValue
	if err := xml.Unmarshal([]byte(rawXML), &rawValue); err != nil {
		t.Fatalf("xml.Unmarshal() = %v", err)
	}

	name, ok := rawValue.XMLName()
	if !ok || name.Local != "summary" {
		t.Fatalf("XMLName() = %v, %v, want summary", name, ok)
	}
	children := rawValue.Elements()
	if len(children) != 2 {
		t.Fatalf("len(Elements()) = %v, want 2", len(children))
	}
	if got := children[1].Text(); got != "Lunch & learn" {
		t.Errorf("Text() = %q, want %q", got, "Lunch & learn")
	}
	lang := children[0].Elements()[0].Elements()[0]
	if got := lang.Text(); got != "en" {
		t.Errorf("Text() = %q, want %q", got, "en")
	}
}
