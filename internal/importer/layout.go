package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type column int

const (
	colDate column = iota
	colAmount
	colCategory
	colDescription
	colDebit
	colCredit
)

// headerNames lists the accepted header spellings per column, folded.
// Bank exports use the Portuguese names.
var headerNames = map[column][]string{
	colDate:        {"date", "data", "data mov.", "data movimento"},
	colAmount:      {"amount", "montante", "movimento", "valor"},
	colCategory:    {"category", "categoria"},
	colDescription: {"description", "descrição", "descricao", "descritivo", "note"},
	colDebit:       {"debit", "débito", "debito"},
	colCredit:      {"credit", "crédito", "credito"},
}

// layout is the position of each known column in a header row.
type layout map[column]int

// detectLayout finds the first row naming a date column and either a signed
// amount column or a debit column. It returns the layout and the index of
// that row.
func detectLayout(rows [][]string) (layout, int, bool) {
	for i, row := range rows {
		l := make(layout)

		for idx, cell := range row {
			name := ledger.NormalizeName(cell)

			for col, names := range headerNames {
				if _, seen := l[col]; seen {
					continue
				}

				for _, n := range names {
					if name == n {
						l[col] = idx
					}
				}
			}
		}

		_, hasDate := l[colDate]
		_, hasAmount := l[colAmount]
		_, hasDebit := l[colDebit]

		if hasDate && (hasAmount || hasDebit) {
			return l, i, true
		}
	}

	return nil, 0, false
}

func (l layout) cell(row []string, col column) string {
	idx, ok := l[col]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// sniffDelimiter picks ';' or ',' by which appears more often in the first
// lines. Semicolon wins ties since decimal commas are common.
func sniffDelimiter(head string) rune {
	lines := strings.SplitN(head, "\n", 20)

	var semis, commas int

	for _, line := range lines {
		semis += strings.Count(line, ";")
		commas += strings.Count(line, ",")
	}

	if commas > semis {
		return ','
	}

	return ';'
}
