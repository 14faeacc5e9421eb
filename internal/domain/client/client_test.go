package client

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/client-registry/internal/httperr"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

func TestPatchAssignments(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  []Assignment
	}{
		{
			name:  "nothing supplied",
			patch: Patch{},
			want:  nil,
		},
		{
			name:  "first name only",
			patch: Patch{FirstName: Some("Jane")},
			want:  []Assignment{{Column: "first_name", Value: "Jane"}},
		},
		{
			name: "column order is fixed",
			patch: Patch{
				Phones:    Some([]string{"1"}),
				Email:     Some("a@b.c"),
				LastName:  Some("Smith"),
				FirstName: Some("Jane"),
			},
			want: []Assignment{
				{Column: "first_name", Value: "Jane"},
				{Column: "last_name", Value: "Smith"},
				{Column: "email", Value: "a@b.c"},
				{Column: "phone", Value: models.PhoneList{"1"}},
			},
		},
		{
			name:  "empty string is a value",
			patch: Patch{Email: Some("")},
			want:  []Assignment{{Column: "email", Value: ""}},
		},
		{
			name:  "nil phone list becomes empty array",
			patch: Patch{Phones: Some[[]string](nil)},
			want:  []Assignment{{Column: "phone", Value: models.PhoneList{}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Assignments()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Assignments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatchFromJSON(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"Jane","email":"","last_name":null}`), &p))

	v, ok := p.FirstName.Get()
	assert.True(t, ok)
	assert.Equal(t, "Jane", v)

	v, ok = p.Email.Get()
	assert.True(t, ok, "present empty string is supplied")
	assert.Equal(t, "", v)

	assert.False(t, p.LastName.Set, "null is not supplied")
	assert.False(t, p.Phones.Set, "missing key is not supplied")
}

func TestPatchApply(t *testing.T) {
	c := models.Client{
		ID:        7,
		FirstName: models.Text("John"),
		LastName:  models.Text("Doe"),
		Email:     models.Text("john@example.com"),
		Phone:     models.PhoneList{"1"},
	}

	Patch{FirstName: Some("Jane"), Email: Some("")}.Apply(&c)

	want := models.Client{
		ID:        7,
		FirstName: models.Text("Jane"),
		LastName:  models.Text("Doe"),
		Email:     models.Text(""),
		Phone:     models.PhoneList{"1"},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterConditionsSkipAbsent(t *testing.T) {
	assert.Empty(t, Filter{}.Conditions())

	conds := Filter{Email: Some("jane@example.com"), Phone: Some("555")}.Conditions()
	want := []Condition{
		{SQL: "email = ?", Arg: "jane@example.com"},
		{SQL: "?::text = ANY(phone)", Arg: "555"},
	}
	if diff := cmp.Diff(want, conds); diff != "" {
		t.Errorf("Conditions mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterMatches(t *testing.T) {
	jane := models.Client{
		ID:        1,
		FirstName: models.Text("Jane"),
		LastName:  nil,
		Email:     models.Text("jane@example.com"),
		Phone:     models.PhoneList{"111", "222"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "no filter matches nothing", filter: Filter{}, want: false},
		{name: "first name", filter: Filter{FirstName: Some("Jane")}, want: true},
		{name: "other first name", filter: Filter{FirstName: Some("John")}, want: false},
		{name: "any of several", filter: Filter{FirstName: Some("John"), Phone: Some("222")}, want: true},
		{name: "NULL column never matches", filter: Filter{LastName: Some("")}, want: false},
		{name: "absent phone filter", filter: Filter{Phone: Some("333")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(jane))
		})
	}
}

func TestNewClientModelDefaultsPhones(t *testing.T) {
	m := NewClient{FirstName: models.Text("John")}.Model()

	require.NotNil(t, m.Phone)
	assert.Empty(t, m.Phone)
	assert.Nil(t, m.Email)
}

func TestBusinessErrors(t *testing.T) {
	assert.True(t, httperr.IsBusiness(ErrNoFieldsToUpdate, CodeNoFieldsToUpdate))
	assert.True(t, httperr.IsBusiness(ErrClientNotFound, CodeClientNotFound))
	assert.False(t, httperr.IsBusiness(ErrClientNotFound, CodeNoFieldsToUpdate))
}
