package videocore

import (
	"errors"
	"fmt"
)

const MailboxFull = 0x80000000
const MailboxEmpty = 0x40000000
const MailboxResponse = 0x80000000
const MailboxRequest = 0x0

/* channels */
const MailboxChannelPower = 0
const MailboxChannelFramebuffer = 1
const MailboxChannelProperties = 8

/*tags*/
const MailboxTagFirmwareVersion = 0x1
const MailboxTagBoardModel = 0x00010001
const MailboxTagBoardRevision = 0x00010002
const MailboxTagGetARMMemory = 0x00010005
const MailboxTagGetClockRate = 0x00030002
const MailboxTagLast = 0x0

/* clock ids for MailboxTagGetClockRate */
const ClockEMMC = 1
const ClockUART = 2
const ClockARM = 3
const ClockCore = 4

// largest message we build, in 32 bit slots
const MessageWords = 36

var (
	ErrMailboxRejected = errors.New("mailbox rejected the request")
	ErrBadResponse     = errors.New("malformed mailbox response")
	ErrMessageSize     = errors.New("mailbox message does not fit")
	ErrMisaligned      = errors.New("mailbox buffer not 16 byte aligned")
)

//
// PropertyMessage lays out a single tag request in buf and returns the part
// of buf that is the message:
//   [0] size in bytes, [1] request code, [2] tag, [3] value buffer size,
//   [4] request/response code, value slots..., end tag, padding
// The message is padded to a multiple of 16 bytes.
//
func PropertyMessage(buf []uint32, tag uint32, request []uint32, responseWords int) ([]uint32, error) {
	valueWords := len(request)
	if responseWords > valueWords {
		valueWords = responseWords
	}
	total := 5 + valueWords + 1
	total = (total + 3) &^ 3
	if total > len(buf) {
		return nil, fmt.Errorf("%w: %d slots needed, %d available", ErrMessageSize, total, len(buf))
	}
	msg := buf[:total]
	for i := range msg {
		msg[i] = 0
	}
	msg[0] = uint32(4 * total)
	msg[1] = MailboxRequest
	msg[2] = tag
	msg[3] = uint32(4 * valueWords)
	msg[4] = 0 //request
	copy(msg[5:], request)
	msg[5+valueWords] = MailboxTagLast
	return msg, nil
}

// PropertyValue checks the videocore's answer to a PropertyMessage and
// returns the value slots it filled in.
func PropertyValue(msg []uint32, tag uint32) ([]uint32, error) {
	if len(msg) < 6 {
		return nil, fmt.Errorf("%w: only %d slots", ErrBadResponse, len(msg))
	}
	if msg[1] != MailboxResponse {
		return nil, fmt.Errorf("%w: code 0x%x", ErrMailboxRejected, msg[1])
	}
	if msg[2] != tag {
		return nil, fmt.Errorf("%w: tag 0x%x, expected 0x%x", ErrBadResponse, msg[2], tag)
	}
	if msg[4]&MailboxResponse == 0 {
		return nil, fmt.Errorf("%w: tag 0x%x not answered", ErrBadResponse, tag)
	}
	n := int(msg[4]&^MailboxResponse) / 4
	if n > int(msg[3])/4 || 5+n > len(msg) {
		return nil, fmt.Errorf("%w: %d value slots", ErrBadResponse, n)
	}
	return msg[5 : 5+n], nil
}

// ClockRateMessage asks for the rate of clock in Hz.
func ClockRateMessage(buf []uint32, clock uint32) ([]uint32, error) {
	return PropertyMessage(buf, MailboxTagGetClockRate, []uint32{clock, 0}, 2)
}

func ParseClockRate(msg []uint32, clock uint32) (uint32, error) {
	v, err := PropertyValue(msg, MailboxTagGetClockRate)
	if err != nil {
		return 0, err
	}
	if len(v) != 2 || v[0] != clock {
		return 0, fmt.Errorf("%w: clock rate answer %v for clock %d", ErrBadResponse, v, clock)
	}
	if v[1] == 0 {
		return 0, fmt.Errorf("%w: clock %d is off", ErrBadResponse, clock)
	}
	return v[1], nil
}
