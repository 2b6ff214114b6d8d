package apitour_test

import (
	"testing"

	"github.com/sagarc03/apitour"
	"github.com/stretchr/testify/assert"
)

func TestTokenChecker_Enforced(t *testing.T) {
	c := apitour.NewTokenChecker("SECRET_VALUE")
	assert.True(t, c.Enforce)

	tests := []struct {
		name     string
		supplied string
		wantErr  bool
	}{
		{name: "match", supplied: "SECRET_VALUE"},
		{name: "wrong", supplied: "secret_value", wantErr: true},
		{name: "prefix", supplied: "SECRET", wantErr: true},
		{name: "absent", supplied: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Check(tt.supplied)
			if tt.wantErr {
				assert.ErrorIs(t, err, apitour.ErrForbidden)
				assert.False(t, c.Matches(tt.supplied))
				return
			}
			assert.NoError(t, err)
			assert.True(t, c.Matches(tt.supplied))
		})
	}
}

func TestTokenChecker_NotEnforced(t *testing.T) {
	c := apitour.TokenChecker{Token: "SECRET_VALUE"}

	assert.NoError(t, c.Check("wrong"))
	assert.NoError(t, c.Check(""))
	assert.False(t, c.Matches("wrong"))
	assert.True(t, c.Matches("SECRET_VALUE"))
}

func TestTokenChecker_EmptyTokenNeverMatches(t *testing.T) {
	c := apitour.NewTokenChecker("")

	assert.False(t, c.Matches(""))
	assert.ErrorIs(t, c.Check(""), apitour.ErrForbidden)
}
