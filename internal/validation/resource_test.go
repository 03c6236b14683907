package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResourceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid simple", input: "matches", wantErr: false},
		{name: "valid with underscore", input: "chat_messages", wantErr: false},
		{name: "valid with hyphen", input: "user-profile", wantErr: false},
		{name: "valid with digits", input: "events2024", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "too short", input: "m", wantErr: true},
		{name: "too long", input: "a" + strings.Repeat("b", 64), wantErr: true},
		{name: "uppercase", input: "Matches", wantErr: true},
		{name: "starts with digit", input: "1matches", wantErr: true},
		{name: "starts with hyphen", input: "-matches", wantErr: true},
		{name: "path separator", input: "matches/all", wantErr: true},
		{name: "spaces", input: "my matches", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
