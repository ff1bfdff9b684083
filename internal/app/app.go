package app

import (
	"github.com/Darksidis/captscreen/config"
	"github.com/Darksidis/captscreen/internal/capture"
	"github.com/Darksidis/captscreen/internal/domain/session/usecases"
)

type App struct {
	Sessions *usecases.Controller
	Recorder *capture.Recorder
}

func New(cfg *config.Config) (*App, error) {
	recorder := capture.NewRecorder(cfg.FFmpegPath)

	sessions := &usecases.Controller{
		Capturer:         recorderCapturer{recorder},
		OutputDir:        cfg.OutputDir,
		StateDir:         cfg.StateDir,
		Framerate:        cfg.Framerate,
		Container:        cfg.Container,
		FilenameTemplate: cfg.FilenameTemplate,
	}

	return &App{
		Sessions: sessions,
		Recorder: recorder,
	}, nil
}

// recorderCapturer adapts the concrete ffmpeg recorder to the controller's
// collaborator interface.
type recorderCapturer struct {
	r *capture.Recorder
}

func (c recorderCapturer) Begin(spec capture.Spec) (usecases.Handle, error) {
	h, err := c.r.Begin(spec)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (c recorderCapturer) BeginDetached(spec capture.Spec) (int, error) {
	return c.r.BeginDetached(spec)
}

func (c recorderCapturer) StopProcess(pid int) error {
	return c.r.StopProcess(pid)
}
