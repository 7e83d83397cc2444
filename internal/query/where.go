package query

import (
	"strconv"
	"strings"
)

// Where accumulates AND-ed SQL conditions written with ? placeholders and
// renders them with postgres positional parameters.
type Where struct {
	clauses []string
	args    []any
}

func (w *Where) Add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w Where) Empty() bool {
	return len(w.clauses) == 0
}

// SQL returns " WHERE ..." (or "") numbering placeholders from $1.
func (w Where) SQL() string {
	if w.Empty() {
		return ""
	}
	joined := "(" + strings.Join(w.clauses, ") AND (") + ")"
	return " WHERE " + rebind(joined, 1)
}

func (w Where) Args() []any {
	return append([]any(nil), w.args...)
}

// Next is the index of the first placeholder free after the filter args.
func (w Where) Next() int {
	return len(w.args) + 1
}

func (w Where) Placeholder(offset int) string {
	return "$" + strconv.Itoa(w.Next()+offset)
}

func rebind(sql string, start int) string {
	var b strings.Builder
	n := start
	for _, r := range sql {
		if r == '?' {
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds an ILIKE pattern matching s anywhere.
func Contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
