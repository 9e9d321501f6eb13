package smoke

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"webook-smoke/internal/session"
)

const Separator = "------------------"

// Printer dumps responses for a human: headers, status code, body text.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Print(resp *session.Response) error {
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, strings.Join(resp.Header.Values(k), ", "))
	}
	fmt.Fprintln(&b, resp.StatusCode)
	fmt.Fprintln(&b, resp.Text())

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *Printer) Separator() error {
	_, err := fmt.Fprintln(p.out, Separator)
	return err
}
