package catalog

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNS    []string
		wantTable string
	}{
		{
			name:      "name only",
			input:     "events",
			wantNS:    []string{},
			wantTable: "events",
		},
		{
			name:      "single namespace level",
			input:     "db.events",
			wantNS:    []string{"db"},
			wantTable: "events",
		},
		{
			name:      "nested namespace",
			input:     "prod.db.events",
			wantNS:    []string{"prod", "db"},
			wantTable: "events",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := ParseIdentifier(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNS, ident.Namespace)
			assert.Equal(t, tt.wantTable, ident.Name)
		})
	}
}

func TestParseIdentifier_Invalid(t *testing.T) {
	for _, input := range []string{"", "db.", ".events", "db..events"} {
		t.Run("input "+input, func(t *testing.T) {
			_, err := ParseIdentifier(input)
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestTableIdentifier_Validate(t *testing.T) {
	valid := NewTableIdentifier([]string{"db"}, "events")
	require.NoError(t, valid.Validate())

	noName := NewTableIdentifier([]string{"db"}, "")
	require.Error(t, noName.Validate())

	emptyLevel := NewTableIdentifier([]string{"db", ""}, "events")
	require.Error(t, emptyLevel.Validate())
}

func TestTableIdentifier_Equal(t *testing.T) {
	a := NewTableIdentifier([]string{"db"}, "events")
	b := NewTableIdentifier([]string{"db"}, "events")
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(NewTableIdentifier([]string{"db"}, "orders")))
	assert.False(t, a.Equal(NewTableIdentifier([]string{"other"}, "events")))
	assert.False(t, a.Equal(NewTableIdentifier(nil, "events")))
	assert.False(t, a.Equal(NewTableIdentifier([]string{"db", "sub"}, "events")))
}

func TestTableIdentifier_Key(t *testing.T) {
	a := NewTableIdentifier([]string{"db"}, "events")
	b := NewTableIdentifier([]string{"db"}, "events")
	assert.Equal(t, a.Key(), b.Key())

	// Dots inside parts must not make distinct identifiers collide,
	// even though their dotted renderings are identical.
	x := NewTableIdentifier([]string{"a.b"}, "c")
	y := NewTableIdentifier([]string{"a"}, "b.c")
	assert.Equal(t, x.String(), y.String())
	assert.NotEqual(t, x.Key(), y.Key())
}

func TestTableIdentifier_String(t *testing.T) {
	assert.Equal(t, "events", NewTableIdentifier(nil, "events").String())
	assert.Equal(t, "db.events", NewTableIdentifier([]string{"db"}, "events").String())
	assert.Equal(t, "prod.db.events", NewTableIdentifier([]string{"prod", "db"}, "events").String())
}
