package refid

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeToken_Base36Timestamp(t *testing.T) {
	token := TimeToken()
	require.Regexp(t, regexp.MustCompile(`^[0-9A-Z]+$`), token)

	millis, err := strconv.ParseInt(strings.ToLower(token), 36, 64)
	require.NoError(t, err)
	require.InDelta(t, time.Now().UnixMilli(), millis, float64(time.Minute.Milliseconds()))
}

func TestSuffix_LengthAndAlphabet(t *testing.T) {
	suffix := Suffix(4)
	require.Len(t, suffix, 4)
	require.Regexp(t, regexp.MustCompile(`^[0-9A-Z]{4}$`), suffix)

	require.Empty(t, Suffix(0))
}

func TestSuffix_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Suffix(8)] = true
	}
	require.Greater(t, len(seen), 1)
}
