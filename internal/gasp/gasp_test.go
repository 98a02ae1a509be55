package gasp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHelper(t *testing.T) {
	cases := []struct {
		apiKey     string
		bioguideID string
		expectErr  error
	}{
		{apiKey: "key", bioguideID: "B000444"},
		{apiKey: "", bioguideID: "B000444", expectErr: ErrMissingAPIKey},
		{apiKey: "key", bioguideID: "", expectErr: ErrMissingBioguideID},
		{apiKey: "", bioguideID: "", expectErr: ErrMissingAPIKey},
	}

	for _, test := range cases {
		helper, err := NewHelper(test.apiKey, test.bioguideID)
		if test.expectErr != nil {
			require.ErrorIs(t, err, test.expectErr)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, Helper{APIKey: test.apiKey, BioguideID: test.bioguideID}, helper)
	}
}
