package permission

import "context"

// Capability names a permission the user grants to the program.
type Capability string

// ReadImages allows the program to list and read image files.
const ReadImages Capability = "read_images"

// Service answers whether a capability is granted and asks the user when
// it is not.
type Service interface {
	// Granted reports whether c is currently granted.
	Granted(c Capability) bool

	// Request blocks until the user answers or ctx ends.
	Request(ctx context.Context, c Capability) (bool, error)

	// RequestAsync delivers the answer on the returned channel.
	RequestAsync(ctx context.Context, c Capability) <-chan bool

	// Grant answers a pending request with yes. remember persists it.
	Grant(requestID string, remember bool)

	// Deny answers a pending request with no.
	Deny(requestID string)
}

// Store persists grants the user asked to remember.
type Store interface {
	Grant(capability string) error
}
