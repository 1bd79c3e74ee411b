package cgd

type amountMode int

const (
	// amountSigned is one signed column, debits negative ("-10,00").
	amountSigned amountMode = iota
	// amountSplit is a pair of unsigned debit and credit columns.
	amountSplit
)

// layout is the header set of one CGD export flavour.
type layout struct {
	name      string
	dateCol   string
	descCol   string
	mode      amountMode
	amountCol string
	debitCol  string
	creditCol string
}

func (l layout) columns() []string {
	if l.mode == amountSplit {
		return []string{l.dateCol, l.descCol, l.debitCol, l.creditCol}
	}

	return []string{l.dateCol, l.descCol, l.amountCol}
}

// layouts are tried in order; the card export goes first since its headers
// are the least ambiguous.
var layouts = []layout{
	{
		name:      "cartão",
		dateCol:   "Data",
		descCol:   "Descrição",
		mode:      amountSplit,
		debitCol:  "Débito",
		creditCol: "Crédito",
	},
	{
		name:      "extrato",
		dateCol:   "Data mov.",
		descCol:   "Descrição",
		mode:      amountSigned,
		amountCol: "Movimento",
	},
	{
		name:      "conta",
		dateCol:   "Data mov.",
		descCol:   "Descrição",
		mode:      amountSigned,
		amountCol: "Montante",
	},
}
