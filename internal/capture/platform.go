package capture

import (
	"fmt"
	"os"
	"runtime"
)

// grabArgs returns the ffmpeg input arguments that grab the primary screen on
// the current platform.
func grabArgs(framerate int) ([]string, error) {
	return grabArgsFor(runtime.GOOS, framerate)
}

func grabArgsFor(goos string, framerate int) ([]string, error) {
	fps := fmt.Sprintf("%d", framerate)
	switch goos {
	case "linux":
		display := os.Getenv("DISPLAY")
		if display == "" {
			return nil, &InitError{Reason: "no display available (DISPLAY is not set)"}
		}
		return []string{"-f", "x11grab", "-framerate", fps, "-i", display}, nil
	case "darwin":
		// avfoundation device "Capture screen 0" is index 1 on stock setups;
		// the named form is stable across device reordering.
		return []string{"-f", "avfoundation", "-framerate", fps, "-capture_cursor", "1", "-i", "Capture screen 0:none"}, nil
	case "windows":
		return []string{"-f", "gdigrab", "-framerate", fps, "-i", "desktop"}, nil
	default:
		return nil, &InitError{Reason: fmt.Sprintf("screen capture not supported on %s", goos)}
	}
}

// encodeArgs returns the ffmpeg output arguments. Even frame dimensions are
// required by libx264, so odd screen sizes get rounded down.
func encodeArgs() []string {
	return []string{
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-pix_fmt", "yuv420p",
	}
}
