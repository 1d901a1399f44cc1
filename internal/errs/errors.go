// File: internal/errs/errors.go
package errs

import "errors"

// Sentinel errors for the taxonomy described in spec.md section 7. Callers
// use errors.Is against these, and errors.As/fmt.Errorf %w to attach detail.
var (
	// ErrOutOfBounds is returned when a scene writes outside the raster's
	// dimensions. It is a programmer error: the raster saturates the write
	// to a no-op rather than panicking, per the implementer's choice
	// documented in spec.md section 7.
	ErrOutOfBounds = errors.New("raster: coordinate out of bounds")

	// ErrConfig marks a malformed or inconsistent configuration document.
	// Surfaced to the CLI; the process must not start any I/O after this.
	ErrConfig = errors.New("config: invalid configuration")

	// ErrScene marks a scene that does not satisfy the Scene contract.
	ErrScene = errors.New("scene: does not satisfy contract")

	// ErrArtNetSend marks a single failed UDP send. It never propagates past
	// the fan-out: it is recovered locally by reporting to the sender
	// monitor.
	ErrArtNetSend = errors.New("artnet: datagram send failed")

	// ErrControllerConnect marks a failed TCP connect attempt to a
	// controller. It never propagates past the session: it triggers a
	// reconnect.
	ErrControllerConnect = errors.New("controller: connect failed")

	// ErrControllerIO marks a failed read or write on an already-connected
	// controller session.
	ErrControllerIO = errors.New("controller: io failed")

	// ErrControllerProtocol marks a malformed or unrecognized line received
	// from a controller. The line is dropped and the session stays open.
	ErrControllerProtocol = errors.New("controller: protocol violation")
)

// ConfigError wraps a configuration problem with its offending detail.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Detail
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// NewConfigError constructs a ConfigError with the given detail message.
func NewConfigError(detail string) error {
	return &ConfigError{Detail: detail}
}

// SceneError wraps a scene-loading problem with its offending detail.
type SceneError struct {
	Detail string
}

func (e *SceneError) Error() string {
	return "scene: " + e.Detail
}

func (e *SceneError) Unwrap() error {
	return ErrScene
}

// NewSceneError constructs a SceneError with the given detail message.
func NewSceneError(detail string) error {
	return &SceneError{Detail: detail}
}
