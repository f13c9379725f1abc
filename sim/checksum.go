package sim

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Checksum hashes every simulated quantity of a snapshot. Two runs fed the
// same intents and events produce the same sequence of checksums.
func Checksum(s Snapshot) uint64 {
	buf := make([]byte, 0, 256)
	le := binary.LittleEndian

	buf = le.AppendUint64(buf, s.Tick)
	buf = appendBody(buf, s.Player.Body)
	buf = appendVec(buf, int32(s.Player.Integrated.X), int32(s.Player.Integrated.Y))
	buf = appendContacts(buf, s.Player.Contacts)
	buf = append(buf, s.Player.Mode...)
	buf = append(buf, 0)
	buf = append(buf, s.Player.SubState...)
	buf = append(buf, 0)
	for _, n := range []int{s.Player.HP, s.Player.Invulnerable, s.Player.Facing, s.Player.Fuel} {
		buf = le.AppendUint32(buf, uint32(int32(n)))
	}
	buf = appendBool(buf, s.Player.Shooting)

	buf = le.AppendUint32(buf, uint32(len(s.Enemies)))
	for _, e := range s.Enemies {
		buf = le.AppendUint64(buf, e.Entity)
		buf = appendBody(buf, e.Body)
		buf = appendContacts(buf, e.Contacts)
	}
	for _, p := range s.Pickups {
		buf = appendBool(buf, p.Available)
	}
	for _, id := range s.Hooks {
		buf = append(buf, id...)
		buf = append(buf, 0)
	}
	buf = le.AppendUint32(buf, uint32(s.Effects.Gravity))
	buf = le.AppendUint32(buf, uint32(s.Effects.Speed))
	buf = le.AppendUint32(buf, uint32(s.Effects.TimeScale))
	buf = appendBool(buf, s.Effects.Invert)

	return xxh3.Hash(buf)
}

func appendBody(buf []byte, b BodyView) []byte {
	buf = appendVec(buf, int32(b.Pos.X), int32(b.Pos.Y))
	buf = appendVec(buf, int32(b.Vel.X), int32(b.Vel.Y))
	buf = appendVec(buf, b.W, b.H)
	return appendBool(buf, b.OnGround)
}

func appendVec(buf []byte, x, y int32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(x))
	return binary.LittleEndian.AppendUint32(buf, uint32(y))
}

func appendContacts(buf []byte, c ContactView) []byte {
	buf = appendBool(buf, c.Left)
	buf = appendBool(buf, c.Right)
	buf = appendBool(buf, c.Top)
	buf = appendBool(buf, c.Bottom)
	return binary.LittleEndian.AppendUint32(buf, uint32(int32(c.Hazard)))
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}
