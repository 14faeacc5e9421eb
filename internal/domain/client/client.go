package client

import (
	"github.com/BruksfildServices01/client-registry/internal/httperr"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

// ===============================
// Business errors
// ===============================

var (
	ErrNoFieldsToUpdate = httperr.ErrBusiness(CodeNoFieldsToUpdate)
	ErrClientNotFound   = httperr.ErrBusiness(CodeClientNotFound)
)

const (
	CodeNoFieldsToUpdate = "no_fields_to_update"
	CodeClientNotFound   = "client_not_found"
)

// ===============================
// Inputs
// ===============================

// NewClient is the input of an insert. Nil text fields are stored as
// NULL; nil Phones is stored as an empty array.
type NewClient struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phones    []string
}

func (n NewClient) Model() *models.Client {
	phones := models.PhoneList(n.Phones)
	if phones == nil {
		phones = models.PhoneList{}
	}

	return &models.Client{
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Email:     n.Email,
		Phone:     phones,
	}
}

// Patch lists the fields of an update. Only fields that are Set are
// written; a Set field holding "" clears the column to blank.
type Patch struct {
	FirstName Optional[string]   `json:"first_name"`
	LastName  Optional[string]   `json:"last_name"`
	Email     Optional[string]   `json:"email"`
	Phones    Optional[[]string] `json:"phone"`
}

// Assignment is one "column = value" pair of an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Assignments returns the supplied fields in column order. An empty
// result means there is nothing to update.
func (p Patch) Assignments() []Assignment {
	var out []Assignment

	if v, ok := p.FirstName.Get(); ok {
		out = append(out, Assignment{Column: "first_name", Value: v})
	}
	if v, ok := p.LastName.Get(); ok {
		out = append(out, Assignment{Column: "last_name", Value: v})
	}
	if v, ok := p.Email.Get(); ok {
		out = append(out, Assignment{Column: "email", Value: v})
	}
	if v, ok := p.Phones.Get(); ok {
		phones := models.PhoneList(v)
		if phones == nil {
			phones = models.PhoneList{}
		}
		out = append(out, Assignment{Column: "phone", Value: phones})
	}

	return out
}

// Apply writes the supplied fields onto c.
func (p Patch) Apply(c *models.Client) {
	for _, a := range p.Assignments() {
		switch a.Column {
		case "first_name":
			c.FirstName = models.Text(a.Value.(string))
		case "last_name":
			c.LastName = models.Text(a.Value.(string))
		case "email":
			c.Email = models.Text(a.Value.(string))
		case "phone":
			c.Phone = append(models.PhoneList{}, a.Value.(models.PhoneList)...)
		}
	}
}

// Filter is a search over clients. Supplied filters are OR-ed; filters
// that are not supplied take no part in the match.
type Filter struct {
	FirstName Optional[string]
	LastName  Optional[string]
	Email     Optional[string]
	Phone     Optional[string]
}

// Condition is one SQL predicate with its bind argument.
type Condition struct {
	SQL string
	Arg any
}

func (f Filter) Conditions() []Condition {
	var out []Condition

	if v, ok := f.FirstName.Get(); ok {
		out = append(out, Condition{SQL: "first_name = ?", Arg: v})
	}
	if v, ok := f.LastName.Get(); ok {
		out = append(out, Condition{SQL: "last_name = ?", Arg: v})
	}
	if v, ok := f.Email.Get(); ok {
		out = append(out, Condition{SQL: "email = ?", Arg: v})
	}
	if v, ok := f.Phone.Get(); ok {
		out = append(out, Condition{SQL: "?::text = ANY(phone)", Arg: v})
	}

	return out
}

// Matches reports whether c satisfies f, using the same rules as the
// SQL built from Conditions.
func (f Filter) Matches(c models.Client) bool {
	eq := func(col *string, o Optional[string]) bool {
		v, ok := o.Get()
		return ok && col != nil && *col == v
	}

	if eq(c.FirstName, f.FirstName) || eq(c.LastName, f.LastName) || eq(c.Email, f.Email) {
		return true
	}

	if v, ok := f.Phone.Get(); ok {
		for _, p := range c.Phone {
			if p == v {
				return true
			}
		}
	}

	return false
}
