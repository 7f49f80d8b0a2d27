package contact

import (
	"bytes"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"

	"github.com/emersion/go-vobject"
)

var (
	aliceData = `BEGIN:VCARD
VERSION:3.0
FN:Alice Gopher
N:Gopher;Alice;;;
item1.EMAIL;TYPE=INTERNET:alice@example.com
PHOTO;ENCODING=BASE64;TYPE=JPEG:aGVsbG8=
END:VCARD
`
	bobData = `BEGIN:VCARD
VERSION:4.0
FN:Bob Gopher
NOTE:Likes burrows
END:VCARD
`
)

func decodeOne(t *testing.T, s string) Card {
	cards, err := DecodeAll(strings.NewReader(s))
	if err != nil {
		t.Fatalf("DecodeAll() = %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("len(DecodeAll()) = %v, want 1", len(cards))
	}
	return cards[0]
}

func TestDecodeAll(t *testing.T) {
	cards, err := DecodeAll(strings.NewReader("\ufeff" + aliceData + bobData))
	if err != nil {
		t.Fatalf("DecodeAll() = %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len(DecodeAll()) = %v, want 2", len(cards))
	}
	if got := cards[1].Value(vcard.FieldFormattedName); got != "Bob Gopher" {
		t.Errorf("FN = %q, want %q", got, "Bob Gopher")
	}
}

func TestCard_DocumentType(t *testing.T) {
	for version, want := range map[string]vobject.DocumentType{
		"2.1": vobject.VCard21,
		"3.0": vobject.VCard30,
		"4.0": vobject.VCard40,
		"5.0": vobject.DocumentUnknown,
	} {
		card := Card{vcard.Card{vcard.FieldVersion: {{Value: version}}}}
		if got := card.DocumentType(); got != want {
			t.Errorf("DocumentType() for %v = %v, want %v", version, got, want)
		}
	}
}

func TestCard_Properties(t *testing.T) {
	card := decodeOne(t, aliceData)
	props := card.Properties()

	var names []string
	for _, p := range props {
		names = append(names, p.Name)
	}
	if got, want := strings.Join(names, ","), "VERSION,EMAIL,FN,N,PHOTO"; got != want {
		t.Errorf("property names = %v, want %v", got, want)
	}

	email := props[1]
	if email.Group != "item1" {
		t.Errorf("Group = %q, want item1", email.Group)
	}
	if got := email.Serialize(); got != "item1.EMAIL;TYPE=INTERNET:alice@example.com\r\n" {
		t.Errorf("Serialize() = %q", got)
	}

	n := props[3]
	if got := n.Parts(); len(got) != 5 || got[0] != "Gopher" || got[1] != "Alice" {
		t.Errorf("N parts = %q, want [Gopher Alice   ]", got)
	}

	photo := props[4]
	if got := photo.ValueType(); got != "BINARY" {
		t.Errorf("PHOTO value type = %v, want BINARY", got)
	}
	b, err := vobject.Binary{}.Bytes(photo)
	if err != nil {
		t.Fatalf("Bytes() = %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("Bytes() = %q, want %q", b, "hello")
	}
}

func TestCard_Validate_encoding(t *testing.T) {
	card := decodeOne(t, aliceData)

	findings := card.Validate(0)
	if len(findings) != 1 || findings[0].Severity != vobject.SeveritySevere {
		t.Fatalf("Validate() = %v, want a single severe finding", findings)
	}

	findings = card.Validate(vobject.Repair)
	if len(findings) != 1 || findings[0].Severity != vobject.SeverityRepaired {
		t.Fatalf("Validate(Repair) = %v, want a single repaired finding", findings)
	}
	if got := card.Get(vcard.FieldPhoto).Params.Get("ENCODING"); got != "B" {
		t.Errorf("ENCODING = %q, want B", got)
	}
	if findings := card.Validate(vobject.Repair); len(findings) != 0 {
		t.Errorf("Validate() after repair = %v, want no findings", findings)
	}
}

func TestCard_Validate_vcard4(t *testing.T) {
	card := decodeOne(t, bobData)
	card.Add(vcard.FieldPhoto, &vcard.Field{
		Value:  "aGVsbG8=",
		Params: vcard.Params{"ENCODING": {"b"}},
	})

	findings := card.Validate(vobject.Repair)
	if len(findings) != 1 || findings[0].Severity != vobject.SeveritySevere {
		t.Fatalf("Validate() = %v, want a single severe finding", findings)
	}
}

func TestCard_Encode(t *testing.T) {
	card := decodeOne(t, bobData)
	card.SetValue(vcard.FieldNote, strings.Repeat("burrows-carrots-", 12)+"end")

	var buf bytes.Buffer
	if err := card.Encode(&buf); err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "BEGIN:VCARD\r\nVERSION:4.0\r\n") {
		t.Errorf("Encode() = %q, want VERSION first", out)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		if len(line) > 75 {
			t.Errorf("line %q is %v bytes long", line, len(line))
		}
	}

	decoded := decodeOne(t, out)
	if got, want := decoded.Value(vcard.FieldNote), card.Value(vcard.FieldNote); got != want {
		t.Errorf("NOTE = %q, want %q", got, want)
	}
}

func TestFieldFromProperty(t *testing.T) {
	p := vobject.NewPropertyWithParams(vobject.DocumentOf(vobject.VCard40), "NOTE", vobject.Text{}, "item2", []vobject.ParamValue{
		{Name: "LANGUAGE", Value: "en"},
	}, "line 1\nline 2")

	field := FieldFromProperty(p)
	if field.Value != "line 1\nline 2" {
		t.Errorf("Value = %q, want %q", field.Value, "line 1\nline 2")
	}
	if field.Group != "item2" {
		t.Errorf("Group = %q, want item2", field.Group)
	}
	if got := field.Params.Get("LANGUAGE"); got != "en" {
		t.Errorf("LANGUAGE = %q, want en", got)
	}
}
