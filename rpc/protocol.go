package rpc

import (
	"bufio"
	"fmt"

	"github.com/MrPickle311/database/lib/db"
)

// --------------------------------------------------------------------------
// Wire Protocol
// --------------------------------------------------------------------------

// A request is ASCII bytes, one per connection: statements separated by
// ';', terminated by exactly one '|'. The reply is a single line of three
// bracketed fields, "[status][payload][code]\n".

// RequestTerminator ends every request.
const RequestTerminator = '|'

// ReadRequest reads from the connection until the terminator and returns
// the request body with the terminator stripped. A connection that never
// sends the terminator blocks until the peer closes or a deadline fires.
func ReadRequest(br *bufio.Reader) (string, error) {
	body, err := br.ReadString(RequestTerminator)
	if err != nil {
		return "", err
	}
	return body[:len(body)-1], nil
}

// FormatReply frames a successful payload. The code field stays empty.
func FormatReply(payload string) string {
	return fmt.Sprintf("[1][%s][]\n", payload)
}

// FormatError frames a structured error: the human message as payload,
// the machine code in the third field.
func FormatError(err *db.Error) string {
	return fmt.Sprintf("[0][%s][%s]\n", err.Msg, err.Code)
}
