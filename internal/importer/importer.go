// Package importer turns bank exports into monthly misc bill candidates.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/billy/internal/importer/cgd"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Parser reads one bank's UTF-8 export.
type Parser interface {
	Parse(r io.Reader) ([]cgd.Movement, error)
}
