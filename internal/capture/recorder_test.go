package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrabArgsLinux(t *testing.T) {
	t.Setenv("DISPLAY", ":1")

	args, err := grabArgsFor("linux", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", "x11grab", "-framerate", "20", "-i", ":1"}, args)
}

func TestGrabArgsLinuxNoDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	_, err := grabArgsFor("linux", 20)
	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "no display")
}

func TestGrabArgsDarwin(t *testing.T) {
	args, err := grabArgsFor("darwin", 30)
	require.NoError(t, err)
	assert.Contains(t, args, "avfoundation")
	assert.Contains(t, args, "30")
}

func TestGrabArgsWindows(t *testing.T) {
	args, err := grabArgsFor("windows", 25)
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", "gdigrab", "-framerate", "25", "-i", "desktop"}, args)
}

func TestGrabArgsUnsupported(t *testing.T) {
	_, err := grabArgsFor("plan9", 20)
	var ie *InitError
	require.ErrorAs(t, err, &ie)
}

func TestOutputArgsUnbounded(t *testing.T) {
	args := outputArgs(Spec{OutputPath: "out.mp4"})

	assert.NotContains(t, args, "-t")
	require.GreaterOrEqual(t, len(args), 2)
	assert.Equal(t, []string{"-y", "out.mp4"}, args[len(args)-2:])
}

func TestOutputArgsBounded(t *testing.T) {
	args := outputArgs(Spec{OutputPath: "out.mp4", MaxDuration: 90 * time.Second})

	found := false
	for i, a := range args {
		if a == "-t" && i+1 < len(args) {
			assert.Equal(t, "90", args[i+1])
			found = true
		}
	}
	assert.True(t, found, "expected a -t bound in %v", args)
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestCheckMissingBinary(t *testing.T) {
	r := NewRecorder("/nonexistent/ffmpeg-for-test")

	err := r.Check()
	var ie *InitError
	require.ErrorAs(t, err, &ie)
}

func TestBeginMissingBinary(t *testing.T) {
	t.Setenv("DISPLAY", ":1")

	r := NewRecorder("/nonexistent/ffmpeg-for-test")
	_, err := r.Begin(Spec{OutputPath: t.TempDir() + "/out.mp4", Framerate: 20})

	var ie *InitError
	require.ErrorAs(t, err, &ie)
}
