package monclient

import "syscall"

// Protocol-specific status codes reported by the meta server, kept below
// the errno range so the two never collide.
const (
	StatusProtocolError   = -10000
	StatusVersionMismatch = -10001
	StatusBadRequest      = -10002
	StatusNotPrimary      = -10003
)

var statusText = map[int]string{
	StatusProtocolError:   "protocol error",
	StatusVersionMismatch: "protocol version mismatch",
	StatusBadRequest:      "malformed request",
	StatusNotPrimary:      "meta server is not primary",
}

// ErrorCodeToStr decodes a meta server status code into human-readable
// text: protocol-specific codes from the table above, plain errno text for
// the rest.
func (c *Client) ErrorCodeToStr(code int) string {
	return ErrorCodeToStr(code)
}

// ErrorCodeToStr is the package-level form of Client.ErrorCodeToStr.
func ErrorCodeToStr(code int) string {
	if code >= 0 {
		return "no error"
	}
	if s, ok := statusText[code]; ok {
		return s
	}
	return syscall.Errno(-code).Error()
}
