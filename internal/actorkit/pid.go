// File: internal/actorkit/pid.go
package actorkit

// PID (Process ID) is a unique, stable reference to a running actor.
type PID struct {
	ID string
}

// String returns the string representation of the PID.
func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}
