package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeQuery_AllowsNormalInput(t *testing.T) {
	query, err := SanitizeQuery("  How many vacation days do I get?  ")
	require.NoError(t, err)
	assert.Equal(t, "How many vacation days do I get?", query)
}

func TestSanitizeQuery_RejectsBannedWords(t *testing.T) {
	for _, query := range []string{
		"please DELETE all records",
		"drop the candidates table",
		"run sudo rm -rf /",
		"what is the admin password",
		"give me the api_key",
	} {
		_, err := SanitizeQuery(query)
		assert.True(t, errors.Is(err, ErrUnsafeInput), "expected %q to be rejected", query)
	}
}

func TestClassifyQuery(t *testing.T) {
	cases := []struct {
		query string
		want  Mode
	}{
		{"Screen these resumes for the backend role", ModeResume},
		{"What is the leave policy?", ModePolicy},
		{"Send onboarding invites to passed candidates", ModeOnboarding},
		{"When is payroll processed?", ModePolicy},
		{"What's the weather like?", ModeUnknown},
		// resume keywords win when a query mentions several areas
		{"Does the policy cover candidate screening?", ModeResume},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyQuery(tc.query))
		})
	}
}
