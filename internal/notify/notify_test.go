package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageConstructors(t *testing.T) {
	s := Success("Saved", "product updated")
	e := Error("Failed", "server said no")
	w := Warning("Heads up", "")

	assert.Equal(t, SeveritySuccess, s.Severity)
	assert.Equal(t, SeverityError, e.Severity)
	assert.Equal(t, SeverityWarning, w.Severity)

	assert.NotEmpty(t, s.ID)
	assert.NotEqual(t, s.ID, e.ID, "each message gets its own ID")
}

func TestTerminal_RoutesErrorsToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	term := &Terminal{Out: &out, ErrOut: &errOut}

	term.Notify(Success("ok", ""))
	term.Notify(Error("boom", "details"))

	assert.Contains(t, out.String(), "ok")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "boom")
	assert.Contains(t, errOut.String(), "details")
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	assert.Equal(t, Message{}, r.Last())

	r.Notify(Success("first", ""))
	r.Notify(Error("second", ""))

	require.Len(t, r.Messages, 2)
	assert.Equal(t, "second", r.Last().Title)
}
