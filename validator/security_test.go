package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_validateTokenFormat(t *testing.T) {
	testCases := []struct {
		name        string
		token       string
		wantErr     bool
		errContains string
	}{
		{
			name:  "well formed compact JWS shape",
			token: "header.payload.signature",
		},
		{
			name:        "empty token",
			token:       "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "token with excessive dots",
			token:       "a.b.c.d.e",
			wantErr:     true,
			errContains: "dots",
		},
		{
			name:        "oversized token",
			token:       strings.Repeat("a", maxTokenBytes+1),
			wantErr:     true,
			errContains: "maximum size",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := validateTokenFormat(testCase.token)
			if !testCase.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.errContains)
		})
	}
}
