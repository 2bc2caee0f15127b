package account

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domerrors "github.com/lverg/accountkit/internal/domain/errors"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"letters and digit", "abc123", nil},
		{"digit first", "1a", nil},
		{"letters only", "password", domerrors.ErrPasswordMissingDigit},
		{"digits only", "123456", domerrors.ErrPasswordMissingLetter},
		{"empty reports digit first", "", domerrors.ErrPasswordMissingDigit},
		{"symbols only reports digit first", "!!!???", domerrors.ErrPasswordMissingDigit},
		{"symbols with digit", "123!!!", domerrors.ErrPasswordMissingLetter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
