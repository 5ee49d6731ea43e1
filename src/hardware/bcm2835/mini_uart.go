//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package bcm2835

//
// MiniUART is the "mini" uart on gpio 14 and 15, polled, 8 bits, no
// interrupts.  Its baud rate is derived from the core clock so that has to be
// known (from the mailbox) before Init.
//
type MiniUART struct {
	Nop func()
}

func (m MiniUART) Init(coreClock uint32, baud uint32) error {
	divisor, err := BaudDivisor(coreClock, baud)
	if err != nil {
		return err
	}
	Aux.Enables.SetBits(PeripheralMiniUART)

	//turn off the transmitter and receiver while we fiddle
	Aux.MiniUARTExtraControl.Set(0)
	Aux.MiniUARTInterruptEnable.ClearBits(AllMiniUARTInterrupts)

	//see errata for why (bad docs!) uses excuse of compat with 16550
	Aux.MiniUARTLineControl.Set(DataLength8Bits)
	Aux.MiniUARTModemControl.ClearBits(ReadyToSend) // this asserts the line
	Aux.MiniUARTInterruptIdentify.ReplaceBits(ClearTransmitFIFO|ClearReceiveFIFO, ClearFIFOsMask, 0)
	Aux.MiniUARTBAUD.Set(divisor)

	GPIOSetup(MiniUARTTxPin, GPIOAltFunc5)
	GPIOSetup(MiniUARTRxPin, GPIOAltFunc5)
	GPIOPullNone((1<<MiniUARTTxPin)|(1<<MiniUARTRxPin), m.Nop)

	Aux.MiniUARTExtraControl.Set(ReceiveEnable | TransmitEnable)
	return nil
}

// WriteByte blocks until there is room in the fifo.
func (m MiniUART) WriteByte(c byte) error {
	for !Aux.MiniUARTLineStatus.HasBits(TransmitFIFOSpaceAvailable) {
		m.Nop()
	}
	Aux.MiniUARTData.Set(uint32(c)) //really 8 bit write
	return nil
}

// ReadByte blocks until a byte arrives.
func (m MiniUART) ReadByte() (byte, error) {
	for !Aux.MiniUARTLineStatus.HasBits(ReceivedDataAvailable) {
		m.Nop()
	}
	return byte(Aux.MiniUARTData.Get()), nil //8 bit read
}
