package domain

import (
	interfaces "mugen/internal/domain/interfaces"
	types "mugen/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID         = types.SessionID
	Fingerprint       = types.Fingerprint
	HandshakeRequest  = types.HandshakeRequest
	HandshakeResponse = types.HandshakeResponse
	Envelope          = types.Envelope
	Payload           = types.Payload
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	HandshakeTransport = interfaces.HandshakeTransport
	SealedTransport    = interfaces.SealedTransport
	SessionService     = interfaces.SessionService
)

// SessionHeader is re-exported from the types subpackage.
const SessionHeader = types.SessionHeader
