package core

import (
	"github.com/google/uuid"

	"pkt.systems/repoclone/schema"
)

func newSessionID() schema.SessionID {
	return schema.SessionID(uuid.NewString())
}
