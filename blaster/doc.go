/*
Package blaster decodes the infrared packets shot by Fri3d blaster badges.

## Hardware

A 38kHz demodulating receiver sits on a single input pin. Like most of these
receivers it idles high and pulls the line low while it sees a burst, so the
level the pin reports is the inverse of the IR signal. A falling edge on the
pin is the start of an IR burst.

The pin-change interrupt fires on both edges, and on some parts also when an
unrelated pin sharing the interrupt vector changes. The decoder therefore
remembers the last level it saw and ignores anything that isn't a real
transition.

## Protocol

Pulse-distance coding: only the time between the starts of two consecutive
bursts matters, not how long each burst lasts.

	| Symbol | Burst-to-burst |
	|^^^^^^^^|^^^^^^^^^^^^^^^^|
	|  Start |       13.5 ms  |
	|    One |       2.25 ms  |
	|   Zero |       1.12 ms  |

Every period is accepted within (0.8x, 1.25x) of its nominal value. A start
is followed by 32 data bits, least significant bit first. The burst that
ends the last bit cell completes the frame, there is no separate stop
symbol to wait for.

## Data Structure

	| Field        | Bits  |
	|^^^^^^^^^^^^^^|^^^^^^^|
	| channel      |     0 |
	| team         |  1- 3 |
	| action       |  4- 5 |
	| action param |  6- 9 |
	| player id    | 10-21 |
	| crc          | 22-29 |
	| unused       | 30-31 |

The team field is a bitmask of the three base teams (Rex, Giggle, Buzz);
combinations make the composite teams.

The checksum is an XOR of eight shifted and masked copies of the low 24
bits, folded down to a byte. A sender puts that byte at bits 24-31. The
receiver computes it again over what it got and XORs it into the same
place; an intact frame reads back with a crc field of zero. See Embed.

## Example

	recv := blaster.NewReceiver(rxd) // rxd is a blasterrx.RxDevice
	recv.Enable()

	for {
		if p, ok := recv.TryRead(); ok && p.Action() == blaster.ActionDamage {
			flash(p.Team())
			recv.TryRead() // drop whatever came in during the effect
		}
		time.Sleep(time.Second / 60)
	}
*/
package blaster
