package sitegrab_test

import (
	"testing"

	"github.com/fwojciec/sitegrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"http://example.com", "https://example.com", "https://example.com/docs?q=1", "http://"} {
			assert.NoError(t, sitegrab.ValidateURL(u), u)
		}
	})

	t.Run("rejects other schemes with EINVALID", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"ftp://example.com", "example.com", "", "HTTPS://example.com", " https://example.com", "mailto:a@b.c"} {
			err := sitegrab.ValidateURL(u)
			require.Error(t, err, u)
			assert.Equal(t, sitegrab.EINVALID, sitegrab.ErrorCode(err), u)
		}
	})
}
