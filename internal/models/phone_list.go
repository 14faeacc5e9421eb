package models

import (
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgtype"
)

// PhoneList maps a Postgres text[] column. Order is preserved and
// duplicates are allowed.
type PhoneList []string

// pgtype.Map memoizes plans without locking, so each use borrows its own.
var typeMaps = sync.Pool{
	New: func() any { return pgtype.NewMap() },
}

// Value encodes the list as a text-format array literal. A nil list is
// NULL, an empty list is '{}'.
func (p PhoneList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}

	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)

	buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string(p), nil)
	if err != nil {
		return nil, fmt.Errorf("encode phone list: %w", err)
	}
	return string(buf), nil
}

func (p *PhoneList) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}

	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)

	var phones []string
	if err := m.SQLScanner(&phones).Scan(src); err != nil {
		return fmt.Errorf("scan phone list: %w", err)
	}
	if phones == nil {
		phones = []string{}
	}

	*p = phones
	return nil
}

// Without returns a copy of the list with every occurrence of phone
// removed, keeping the remaining entries in order.
func (p PhoneList) Without(phone string) PhoneList {
	out := make(PhoneList, 0, len(p))
	for _, v := range p {
		if v != phone {
			out = append(out, v)
		}
	}
	return out
}
