package blaster

import "fmt"

// Packet is a received 32-bit frame. The zero Packet means nothing was
// received.
type Packet uint32

const (
	channelMask     = 0b00000000000000000000000000000001
	teamMask        = 0b00000000000000000000000000001110
	actionMask      = 0b00000000000000000000000000110000
	actionParamMask = 0b00000000000000000000001111000000
	playerIDMask    = 0b00000000001111111111110000000000
	crcMask         = 0b00111111110000000000000000000000
	unusedMask      = 0b11000000000000000000000000000000

	channelShift     = 0
	teamShift        = 1
	actionShift      = 4
	actionParamShift = 6
	playerIDShift    = 10
	crcShift         = 22
	unusedShift      = 30
)

// MaxPlayerID is the largest shooter id a packet can carry.
const MaxPlayerID = playerIDMask >> playerIDShift

func (p Packet) field(mask uint32, shift uint) uint32 {
	return (uint32(p) & mask) >> shift
}

func (p Packet) withField(mask uint32, shift uint, v uint32) Packet {
	return Packet(uint32(p)&^mask | (v<<shift)&mask)
}

func (p Packet) Channel() uint8     { return uint8(p.field(channelMask, channelShift)) }
func (p Packet) Team() Team         { return Team(p.field(teamMask, teamShift)) }
func (p Packet) Action() Action     { return Action(p.field(actionMask, actionShift)) }
func (p Packet) ActionParam() uint8 { return uint8(p.field(actionParamMask, actionParamShift)) }
func (p Packet) PlayerID() uint16   { return uint16(p.field(playerIDMask, playerIDShift)) }
func (p Packet) CRC() uint8         { return uint8(p.field(crcMask, crcShift)) }
func (p Packet) Unused() uint8      { return uint8(p.field(unusedMask, unusedShift)) }

// Setters return a copy with the field replaced; out of range values are
// truncated to the field width.

func (p Packet) WithChannel(ch uint8) Packet {
	return p.withField(channelMask, channelShift, uint32(ch))
}

func (p Packet) WithTeam(t Team) Packet {
	return p.withField(teamMask, teamShift, uint32(t))
}

func (p Packet) WithAction(a Action) Packet {
	return p.withField(actionMask, actionShift, uint32(a))
}

func (p Packet) WithActionParam(param uint8) Packet {
	return p.withField(actionParamMask, actionParamShift, uint32(param))
}

func (p Packet) WithPlayerID(id uint16) Packet {
	return p.withField(playerIDMask, playerIDShift, uint32(id))
}

func (p Packet) WithCRC(crc uint8) Packet {
	return p.withField(crcMask, crcShift, uint32(crc))
}

func (p Packet) WithUnused(u uint8) Packet {
	return p.withField(unusedMask, unusedShift, uint32(u))
}

func (p Packet) String() string {
	return fmt.Sprintf("ch=%d team=%s action=%s param=%d player=%d crc=0x%02x",
		p.Channel(), p.Team(), p.Action(), p.ActionParam(), p.PlayerID(), p.CRC())
}

// Team is a bitmask of the three base teams.
type Team uint8

const (
	NoTeam     Team = 0b000
	TeamRex    Team = 0b001
	TeamGiggle Team = 0b010
	TeamBuzz   Team = 0b100

	TeamYellow  = TeamRex | TeamGiggle
	TeamMagenta = TeamRex | TeamBuzz
	TeamCyan    = TeamGiggle | TeamBuzz
	TeamWhite   = TeamRex | TeamGiggle | TeamBuzz
)

var teamNames = [...]string{
	NoTeam:      "none",
	TeamRex:     "rex",
	TeamGiggle:  "giggle",
	TeamBuzz:    "buzz",
	TeamYellow:  "yellow",
	TeamMagenta: "magenta",
	TeamCyan:    "cyan",
	TeamWhite:   "white",
}

func (t Team) String() string {
	if int(t) < len(teamNames) {
		return teamNames[t]
	}
	return fmt.Sprintf("team(%d)", uint8(t))
}

// Has reports whether t includes every base team in base.
func (t Team) Has(base Team) bool {
	return t&base == base
}

type Action uint8

const (
	ActionNone   Action = 0
	ActionDamage Action = 1
	ActionHeal   Action = 2
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionDamage:
		return "damage"
	case ActionHeal:
		return "heal"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}
