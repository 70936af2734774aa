package log

import (
	"fmt"
	"strings"
)

type TB interface {
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
	Helper()
}

// Test is a logger using the testing package T or B types for logging. It
// keeps its own plain-text tag formatting rather than going through
// zerolog: its sink is t.Logf/t.Fatalf, not an io.Writer, and test output
// wants the raw tag list rather than console-formatted JSON-ish fields.
type Test struct {
	TB
	Tags []interface{}
}

func NewTest(tb TB, tags ...interface{}) *Test { return &Test{TB: tb, Tags: tags} }

func (l *Test) Debug(m string, s ...interface{}) { l.Helper(); l.Logf(line("DEB ", m, s, l.Tags)) }
func (l *Test) Error(m string, s ...interface{}) { l.Helper(); l.Errorf(line("ERR ", m, s, l.Tags)) }
func (l *Test) Crit(m string, s ...interface{})  { l.Helper(); l.Fatalf(line("CRI ", m, s, l.Tags)) }
func (l *Test) With(tags ...interface{}) Logger {
	t := make([]interface{}, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Test{TB: l.TB, Tags: t}
}

func line(lvl, msg string, all ...[]interface{}) string {
	var b strings.Builder
	b.WriteString(lvl)
	b.WriteString(msg)
	for _, tags := range all {
		for i, v := range tags {
			if i%2 == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte('=')
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}
