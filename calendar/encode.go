package calendar

import (
	"bufio"
	"io"

	"github.com/emersion/go-ical"
)

// Encode writes the calendar with folded lines terminated by CRLF.
// Properties are written sorted by name.
func (cal *Calendar) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cal.encodeComponent(bw, cal.Component)
	return bw.Flush()
}

func (cal *Calendar) encodeComponent(bw *bufio.Writer, comp *ical.Component) {
	bw.WriteString("BEGIN:" + comp.Name + "\r\n")
	for _, p := range cal.Properties(comp) {
		bw.WriteString(p.Serialize())
	}
	for _, child := range comp.Children {
		cal.encodeComponent(bw, child)
	}
	bw.WriteString("END:" + comp.Name + "\r\n")
}
