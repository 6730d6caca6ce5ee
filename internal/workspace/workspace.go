// Package workspace holds the per-session image state: the loaded original,
// the latest processed result and the single in-flight transformation guard.
package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/realtime"
)

var (
	ErrBusy       = errors.New("a transformation is already running for this workspace")
	ErrNoOriginal = errors.New("upload an image before running a transformation")
	ErrNotFound   = errors.New("workspace not found")
)

// Transformation turns the original into a processed image.
type Transformation func(ctx context.Context, original imagedata.EncodedImage) (imagedata.EncodedImage, error)

// Notifier receives workspace lifecycle events. realtime.Hub implements it.
type Notifier interface {
	Publish(workspaceID uuid.UUID, event string, payload map[string]interface{})
}

type nopNotifier struct{}

func (nopNotifier) Publish(uuid.UUID, string, map[string]interface{}) {}

// State is a point-in-time copy of a workspace.
type State struct {
	Original      *imagedata.EncodedImage
	Processed     *imagedata.EncodedImage
	ProcessedMode models.Mode
	Processing    bool
	Error         string
}

type Workspace struct {
	ID        uuid.UUID
	Owner     string
	Name      string
	CreatedAt time.Time

	notifier Notifier

	mu        sync.Mutex
	state     State
	updatedAt time.Time
}

func New(owner, name string, notifier Notifier) *Workspace {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	now := time.Now().UTC()
	return &Workspace{
		ID:        uuid.New(),
		Owner:     owner,
		Name:      name,
		CreatedAt: now,
		notifier:  notifier,
		updatedAt: now,
	}
}

// LoadImage validates and stores a new original. A rejected upload records
// the message and leaves the previous images in place.
func (w *Workspace) LoadImage(data []byte, declaredType string) (imagedata.EncodedImage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Processing {
		return imagedata.EncodedImage{}, ErrBusy
	}
	w.touchLocked()

	img, err := imagedata.Load(data, declaredType)
	if err != nil {
		w.state.Error = err.Error()
		return imagedata.EncodedImage{}, err
	}

	w.state.Original = &img
	w.state.Processed = nil
	w.state.ProcessedMode = ""
	w.state.Error = ""

	w.notifier.Publish(w.ID, realtime.EventImageLoaded, realtime.ImageLoadedPayload(w.ID, img.MIMEType, len(img.Data)))
	return img, nil
}

// Invoke runs fn against the current original. Only one call may be in
// flight; fn runs without holding the lock.
func (w *Workspace) Invoke(ctx context.Context, mode models.Mode, fn Transformation) (imagedata.EncodedImage, error) {
	w.mu.Lock()
	if w.state.Processing {
		w.mu.Unlock()
		return imagedata.EncodedImage{}, ErrBusy
	}
	w.touchLocked()
	if w.state.Original == nil {
		w.state.Error = ErrNoOriginal.Error()
		w.mu.Unlock()
		return imagedata.EncodedImage{}, ErrNoOriginal
	}

	original := *w.state.Original
	w.state.Error = ""
	w.state.Processed = nil
	w.state.ProcessedMode = ""
	w.state.Processing = true
	w.mu.Unlock()

	w.notifier.Publish(w.ID, realtime.EventProcessingStarted, realtime.ProcessingStartedPayload(w.ID, string(mode)))

	result, err := fn(ctx, original)

	w.mu.Lock()
	w.state.Processing = false
	w.touchLocked()
	if err != nil {
		w.state.Error = err.Error()
		w.mu.Unlock()
		w.notifier.Publish(w.ID, realtime.EventProcessingFailed, realtime.ProcessingFailedPayload(w.ID, string(mode), err.Error()))
		return imagedata.EncodedImage{}, err
	}
	w.state.Processed = &result
	w.state.ProcessedMode = mode
	w.mu.Unlock()

	w.notifier.Publish(w.ID, realtime.EventProcessingCompleted, realtime.ProcessingCompletedPayload(w.ID, string(mode), len(result.Data)))
	return result, nil
}

// DiscardResult drops the processed image but keeps the original.
func (w *Workspace) DiscardResult() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Processing {
		return ErrBusy
	}
	w.touchLocked()
	w.state.Processed = nil
	w.state.ProcessedMode = ""
	w.state.Error = ""
	w.notifier.Publish(w.ID, realtime.EventResultDiscarded, realtime.StatusPayload(w.ID, "discarded"))
	return nil
}

// Clear returns the workspace to its empty state.
func (w *Workspace) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Processing {
		return ErrBusy
	}
	w.touchLocked()
	w.state = State{}
	w.notifier.Publish(w.ID, realtime.EventWorkspaceCleared, realtime.StatusPayload(w.ID, "empty"))
	return nil
}

func (w *Workspace) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.state
	if s.Original != nil {
		original := *s.Original
		s.Original = &original
	}
	if s.Processed != nil {
		processed := *s.Processed
		s.Processed = &processed
	}
	return s
}

func (w *Workspace) UpdatedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updatedAt
}

// idle reports whether the workspace has been untouched for longer than
// maxIdle. A running transformation is never idle.
func (w *Workspace) idle(now time.Time, maxIdle time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.state.Processing && now.Sub(w.updatedAt) > maxIdle
}

func (w *Workspace) busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Processing
}

func (w *Workspace) touchLocked() {
	w.updatedAt = time.Now().UTC()
}
