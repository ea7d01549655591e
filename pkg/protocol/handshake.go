package protocol

// HandshakeStatus represents the result of a handshake.
type HandshakeStatus uint8

const (
	HandshakeOK              HandshakeStatus = 0x00
	HandshakeVersionMismatch HandshakeStatus = 0x01 // Protocol version not supported
	HandshakeServerBusy      HandshakeStatus = 0x04 // Session limit reached
	HandshakeInvalidFormat   HandshakeStatus = 0x06 // Malformed handshake message
	HandshakeInternalError   HandshakeStatus = 0x08 // Server error
	HandshakePageOutdated    HandshakeStatus = 0x09 // Client holds an older page, reload
)

// String returns the string representation of the handshake status.
func (hs HandshakeStatus) String() string {
	switch hs {
	case HandshakeOK:
		return "OK"
	case HandshakeVersionMismatch:
		return "VersionMismatch"
	case HandshakeServerBusy:
		return "ServerBusy"
	case HandshakeInvalidFormat:
		return "InvalidFormat"
	case HandshakeInternalError:
		return "InternalError"
	case HandshakePageOutdated:
		return "PageOutdated"
	default:
		return "Unknown"
	}
}

// ProtocolVersion represents a protocol version as major.minor.
type ProtocolVersion struct {
	Major uint8
	Minor uint8
}

// CurrentVersion is the current protocol version.
var CurrentVersion = ProtocolVersion{Major: 1, Minor: 0}

// Compatible reports whether a client speaking v can talk to this server.
// Minor versions are backwards compatible.
func (v ProtocolVersion) Compatible(server ProtocolVersion) bool {
	return v.Major == server.Major
}

// ClientHello is sent by the client after the WebSocket connection opens.
type ClientHello struct {
	Version     ProtocolVersion // Protocol version
	PageVersion string          // Version stamp of the rendered page
}

// ServerHello is the server's response to ClientHello.
type ServerHello struct {
	Status     HandshakeStatus // Handshake result
	SessionID  string          // Session ID
	ServerTime uint64          // Server time in Unix milliseconds
}

// EncodeClientHello encodes a ClientHello to bytes.
func EncodeClientHello(ch *ClientHello) []byte {
	e := NewEncoder()
	e.WriteByte(ch.Version.Major)
	e.WriteByte(ch.Version.Minor)
	e.WriteString(ch.PageVersion)
	return e.Bytes()
}

// DecodeClientHello decodes a ClientHello from bytes.
func DecodeClientHello(data []byte) (*ClientHello, error) {
	d := NewDecoder(data)
	major, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	minor, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	page, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ClientHello{
		Version:     ProtocolVersion{Major: major, Minor: minor},
		PageVersion: page,
	}, nil
}

// EncodeServerHello encodes a ServerHello to bytes.
func EncodeServerHello(sh *ServerHello) []byte {
	e := NewEncoder()
	e.WriteByte(byte(sh.Status))
	e.WriteString(sh.SessionID)
	e.WriteUint64(sh.ServerTime)
	return e.Bytes()
}

// DecodeServerHello decodes a ServerHello from bytes.
func DecodeServerHello(data []byte) (*ServerHello, error) {
	d := NewDecoder(data)
	status, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	id, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	ts, err := d.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &ServerHello{Status: HandshakeStatus(status), SessionID: id, ServerTime: ts}, nil
}

// NewServerHello creates a successful ServerHello.
func NewServerHello(sessionID string, serverTime uint64) *ServerHello {
	return &ServerHello{Status: HandshakeOK, SessionID: sessionID, ServerTime: serverTime}
}

// NewServerHelloError creates a ServerHello with an error status.
func NewServerHelloError(status HandshakeStatus) *ServerHello {
	return &ServerHello{Status: status}
}
