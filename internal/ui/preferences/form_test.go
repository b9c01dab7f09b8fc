package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustimer/internal/core/model"
)

func TestFormRoundTripsDefaults(t *testing.T) {
	defaults := model.DefaultTimerSettings()
	form := FormFrom(defaults)
	assert.Equal(t, "90", form.FocusMinutes)
	assert.Equal(t, "180", form.MicroBreakMinSeconds)

	parsed, err := form.Settings()
	require.NoError(t, err)
	assert.Equal(t, defaults, parsed)
}

func TestFormTrimsWhitespace(t *testing.T) {
	form := FormFrom(model.DefaultTimerSettings())
	form.FocusMinutes = " 25 "
	parsed, err := form.Settings()
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, parsed.FocusDuration)
}

func TestFormRejectsBadNumbers(t *testing.T) {
	for _, raw := range []string{"", "0", "-5", "ten", "1.5"} {
		form := FormFrom(model.DefaultTimerSettings())
		form.BreakMinutes = raw
		_, err := form.Settings()
		assert.Error(t, err, "input %q", raw)
	}
}

func TestSoundOptionsMatchCatalogue(t *testing.T) {
	options := SoundOptions()
	require.Len(t, options, len(model.Sounds))
	assert.Equal(t, "tink", options[0])
}
