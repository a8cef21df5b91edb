package conversation

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Seed derives a deterministic 32-bit terrain seed from the conversation id,
// or from the concatenated message content when the id is empty.
func Seed(c Conversation) int32 {
	var buf []byte
	if c.ID != "" {
		buf = []byte(c.ID)
	} else {
		for _, m := range c.Messages {
			buf = append(buf, string(m.Speaker())...)
			buf = append(buf, 0)
			buf = append(buf, m.Content...)
			buf = append(buf, 0)
		}
	}
	sum := blake2b.Sum256(buf)
	return int32(binary.BigEndian.Uint32(sum[:4]))
}
