package importer

import (
	"errors"
	"io"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type Format string

const (
	FormatNFe Format = "nfe"
)

var (
	ErrUnknownFormat   = errors.New("unknown import format")
	ErrInvalidDocument = errors.New("invalid document")
)

// Importer turns one fiscal document into the parameters of a new invoice.
type Importer interface {
	Parse(r io.Reader) (invoice.CreateParams, error)
}
