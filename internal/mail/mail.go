// Package mail is the narrow interface to the mail-client collaborator:
// all this system consumes from a mail client is the sender's name and
// address.
package mail

import (
	"io"
	stdmail "net/mail"
	"strings"
)

// Sender supplies the (name, email) pair of the message currently in
// focus. Implemented by mail-client integrations; consumed by commands
// that look up or create the matching contact.
type Sender interface {
	SenderNameAndEmail() (name, email string, ok bool)
}

// Message adapts an RFC 822 message stream to the Sender interface.
type Message struct {
	name  string
	email string
	ok    bool
}

// ReadMessage parses just enough of a message to answer Sender queries.
func ReadMessage(r io.Reader) (*Message, error) {
	msg, err := stdmail.ReadMessage(r)
	if err != nil {
		return nil, err
	}

	from := msg.Header.Get("From")
	if from == "" {
		return &Message{}, nil
	}
	addr, err := stdmail.ParseAddress(from)
	if err != nil {
		return &Message{}, nil
	}

	name := addr.Name
	if name == "" {
		// Fall back to the local part, the common convention when a
		// sender sets no display name.
		name = strings.SplitN(addr.Address, "@", 2)[0]
	}
	return &Message{name: name, email: addr.Address, ok: true}, nil
}

// SenderNameAndEmail implements Sender.
func (m *Message) SenderNameAndEmail() (string, string, bool) {
	return m.name, m.email, m.ok
}
