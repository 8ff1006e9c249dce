package entity

import (
	"errors"
	"strings"
	"unicode"
)

// Type separates the two registries: the stores that receive goods and the
// suppliers that issue invoices.
type Type string

const (
	TypeStore    Type = "store"
	TypeSupplier Type = "supplier"
)

var (
	ErrNotFound    = errors.New("entity not found")
	ErrDuplicate   = errors.New("name or tax ID already registered")
	ErrInvalid     = errors.New("name and tax ID are required")
	ErrUnknownType = errors.New("unknown entity type")
)

type Entity struct {
	ID    int64
	Type  Type
	Name  string
	TaxID string
}

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeStore, "stores", "loja", "lojas":
		return TypeStore, nil
	case TypeSupplier, "suppliers", "fornecedor", "fornecedores":
		return TypeSupplier, nil
	}

	return "", ErrUnknownType
}

// NormalizeTaxID keeps only the digits of a CNPJ or CPF, so
// "12.345.678/0001-99" and "12345678000199" are the same ID.
func NormalizeTaxID(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, s)
}
