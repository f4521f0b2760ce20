// Package session drives one user's way through the generator:
//
//	Idle -> FormFilled -> QrGenerated -> Exporting -> Idle | ExportError
//
// Every transition is triggered by a discrete user action. Both the web
// handlers and the CLI go through a Session.
package session

import (
	"image"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/upiqr/internal/export"
	"github.com/cristianadrielbraun/upiqr/internal/upi"
)

// State is a step of the generator workflow.
type State int

const (
	Idle State = iota
	FormFilled
	QrGenerated
	Exporting
	ExportError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FormFilled:
		return "form_filled"
	case QrGenerated:
		return "qr_generated"
	case Exporting:
		return "exporting"
	case ExportError:
		return "export_error"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition means an action was attempted from a state that
	// does not allow it.
	ErrInvalidTransition = errors.New("session: invalid transition")
	// ErrBusy means an export is already running; export controls are
	// disabled until it finishes.
	ErrBusy = errors.New("session: export in progress")
)

// Renderer renders a payload into a QR bitmap.
type Renderer interface {
	Render(content string) (image.Image, error)
}

// Compositor flattens a QR bitmap and captions into the exported image.
type Compositor interface {
	Composite(qr image.Image, req upi.PaymentRequest) (image.Image, error)
}

// Exporter encodes the composited image.
type Exporter interface {
	Export(kind export.Kind, img image.Image, req upi.PaymentRequest) (export.Artifact, error)
}

// Pipeline bundles the stages a session runs.
type Pipeline struct {
	Renderer   Renderer
	Compositor Compositor
	Exporter   Exporter
}

// Session holds the state of one generator run. Methods are safe for
// concurrent use; a second Export while one is running fails with ErrBusy.
type Session struct {
	id       string
	pipeline Pipeline
	log      *logrus.Entry

	mu          sync.Mutex
	state       State
	req         upi.PaymentRequest
	uri         string
	image       image.Image
	fieldErrors upi.ValidationErrors
	lastErr     error
}

// New returns an Idle session.
func New(p Pipeline, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		pipeline: p,
		log:      log.WithField("session", id),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Request returns the last accepted payment request.
func (s *Session) Request() upi.PaymentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.req
}

// URI returns the deep link of the generated QR, empty before Generate.
func (s *Session) URI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uri
}

// Image returns the composited image, nil before Generate.
func (s *Session) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// FieldErrors returns the validation errors of the last rejected Submit.
func (s *Session) FieldErrors() upi.ValidationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fieldErrors
}

// Err returns the export error shown while in ExportError.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) transition(to State) {
	s.log.WithFields(logrus.Fields{"from": s.state, "to": to}).Debug("session transition")
	s.state = to
}

func (s *Session) invalid(action string) error {
	return errors.Wrapf(ErrInvalidTransition, "%s from %s", action, s.state)
}

// Submit validates f. A valid form replaces any previous request and its
// artefacts and moves to FormFilled; an invalid one drops back to Idle with
// the field errors kept for display.
func (s *Session) Submit(f upi.Form) (upi.PaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Exporting {
		return upi.PaymentRequest{}, ErrBusy
	}

	req, err := f.Validate()
	s.req, s.uri, s.image, s.lastErr, s.fieldErrors = upi.PaymentRequest{}, "", nil, nil, nil
	if err != nil {
		if verrs, ok := err.(upi.ValidationErrors); ok {
			s.fieldErrors = verrs
		}
		s.transition(Idle)
		return upi.PaymentRequest{}, err
	}

	s.req = req
	s.transition(FormFilled)
	return req, nil
}

// Generate builds the deep link, renders and composites the QR image.
func (s *Session) Generate() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != FormFilled {
		return nil, s.invalid("generate")
	}

	uri := upi.BuildURI(s.req)
	qrImg, err := s.pipeline.Renderer.Render(uri)
	if err != nil {
		s.log.WithError(err).Error("render QR")
		return nil, errors.Wrap(err, "session: render")
	}
	img, err := s.pipeline.Compositor.Composite(qrImg, s.req)
	if err != nil {
		s.log.WithError(err).Error("composite QR")
		return nil, errors.Wrap(err, "session: composite")
	}

	s.uri, s.image = uri, img
	s.transition(QrGenerated)
	s.log.WithField("uri", uri).Info("QR generated")
	return img, nil
}

// Export encodes the generated image. It is allowed once a QR exists, from
// QrGenerated, after a previous export (Idle) or as a retry from ExportError.
func (s *Session) Export(kind export.Kind) (export.Artifact, error) {
	s.mu.Lock()
	switch {
	case s.state == Exporting:
		s.mu.Unlock()
		return export.Artifact{}, ErrBusy
	case s.image == nil || (s.state != QrGenerated && s.state != Idle && s.state != ExportError):
		err := s.invalid("export")
		s.mu.Unlock()
		return export.Artifact{}, err
	}
	img, req := s.image, s.req
	s.lastErr = nil
	s.transition(Exporting)
	s.mu.Unlock()

	a, err := s.pipeline.Exporter.Export(kind, img, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		s.transition(ExportError)
		s.log.WithError(err).WithField("format", kind).Error("export failed")
		return export.Artifact{}, err
	}
	s.transition(Idle)
	s.log.WithFields(logrus.Fields{"format": kind, "file": a.Filename, "bytes": len(a.Data)}).Info("exported")
	return a, nil
}

// Dismiss acknowledges an export error and returns to Idle. The generated
// image is kept so the user can retry.
func (s *Session) Dismiss() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ExportError {
		return s.invalid("dismiss")
	}
	s.lastErr = nil
	s.transition(Idle)
	return nil
}
