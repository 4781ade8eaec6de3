package pdcp

import "errors"

// ErrNotActive is returned by WriteSDU/WritePDU when the entity has been
// reset (or never initialized) and is not accepting traffic.
var ErrNotActive = errors.New("pdcp: entity is not active")

// ErrInvalidConfig is returned by Init when the supplied BearerConfig fails
// validation.
var ErrInvalidConfig = errors.New("pdcp: invalid bearer configuration")

// ErrAlreadyInitialized is returned by Init when called on an entity that
// has already been configured; Init happens exactly once per entity.
var ErrAlreadyInitialized = errors.New("pdcp: entity already initialized")

// ErrNilCollaborator is returned by Init when a required RLC/RRC/GW
// collaborator for the configured bearer type is nil.
var ErrNilCollaborator = errors.New("pdcp: required collaborator is nil")
