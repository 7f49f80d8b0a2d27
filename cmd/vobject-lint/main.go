package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/emersion/go-ical"
	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	"github.com/emersion/go-vobject"
	"github.com/emersion/go-vobject/calendar"
	"github.com/emersion/go-vobject/contact"
)

type document interface {
	Validate(opts vobject.ValidateOptions) []vobject.Finding
	Encode(w io.Writer) error
}

type options struct {
	repair  bool
	write   bool
	json    bool
	verbose bool
}

func main() {
	var opts options
	flag.BoolVarP(&opts.repair, "repair", "r", false, "repair defects in place")
	flag.BoolVarP(&opts.write, "write", "w", false, "print the (repaired) documents to stdout")
	flag.BoolVar(&opts.json, "json", false, "print each property as a jCal/jCard tuple")
	flag.BoolVarP(&opts.verbose, "verbose", "v", false, "log repaired and minor findings too")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options...] <file.ics|file.vcf>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	severe := 0
	for _, path := range flag.Args() {
		n, err := lint(path, &opts)
		if err != nil {
			slog.Error("failed to lint file", "path", path, "error", err)
			os.Exit(1)
		}
		severe += n
	}
	if severe > 0 {
		os.Exit(1)
	}
}

func lint(path string, opts *options) (severe int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	data, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return 0, err
	}

	docs, err := decode(path, data)
	if err != nil {
		return 0, err
	}

	var validateOpts vobject.ValidateOptions
	if opts.repair {
		validateOpts |= vobject.Repair
	}

	for _, doc := range docs {
		for _, finding := range doc.Validate(validateOpts) {
			logFinding(path, &finding)
			if finding.Severity == vobject.SeveritySevere {
				severe++
			}
		}
		if opts.write {
			if err := doc.Encode(os.Stdout); err != nil {
				return severe, err
			}
		}
		if opts.json {
			if err := printJSON(doc); err != nil {
				return severe, err
			}
		}
	}
	return severe, nil
}

func decode(path string, data []byte) ([]document, error) {
	isCard := bytes.Contains(data, []byte("BEGIN:VCARD"))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vcf", ".vcard":
		isCard = true
	case ".ics", ".ical":
		isCard = false
	}

	if !isCard {
		cal, err := calendar.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return []document{cal}, nil
	}

	cards, err := contact.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	docs := make([]document, len(cards))
	for i, card := range cards {
		docs[i] = card
	}
	return docs, nil
}

func logFinding(path string, finding *vobject.Finding) {
	args := []any{"path", path, "severity", finding.Severity.String()}
	if finding.Node != nil {
		args = append(args, "node", vobject.Unfold(strings.TrimSuffix(finding.Node.Serialize(), "\r\n")))
	}
	switch finding.Severity {
	case vobject.SeverityRepaired:
		slog.Info(finding.Message, args...)
	case vobject.SeverityMinor:
		slog.Debug(finding.Message, args...)
	default:
		slog.Error(finding.Message, args...)
	}
}

func printJSON(doc document) error {
	var props []*vobject.Property
	switch doc := doc.(type) {
	case *calendar.Calendar:
		props = calendarProperties(doc, doc.Component)
	case contact.Card:
		props = doc.Properties()
	}

	enc := json.NewEncoder(os.Stdout)
	for _, p := range props {
		if err := enc.Encode(p); err != nil {
			return err
		}
	}
	return nil
}

func calendarProperties(cal *calendar.Calendar, comp *ical.Component) []*vobject.Property {
	props := cal.Properties(comp)
	for _, child := range comp.Children {
		props = append(props, calendarProperties(cal, child)...)
	}
	return props
}
