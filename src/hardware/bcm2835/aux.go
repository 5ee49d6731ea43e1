//go:build rpi3 || rpi3_qemu
// +build rpi3 rpi3_qemu

package bcm2835

import "runtime/volatile"

// the SPI masters that follow the mini uart are not mapped
type AuxPeripheralsRegisterMap struct {
	InterruptStatus           volatile.Register32 //0x00
	Enables                   volatile.Register32 //0x04
	reserved00                [14]uint32
	MiniUARTData              volatile.Register32 //0x40, 8 bits wide
	MiniUARTInterruptEnable   volatile.Register32 //0x44
	MiniUARTInterruptIdentify volatile.Register32 //0x48
	MiniUARTLineControl       volatile.Register32 //0x4C
	MiniUARTModemControl      volatile.Register32 //0x50
	MiniUARTLineStatus        volatile.Register32 //0x54, readonly
	MiniUARTModemStatus       volatile.Register32 //0x58, readonly
	MiniUARTScratch           volatile.Register32 //0x5C
	MiniUARTExtraControl      volatile.Register32 //0x60
	MiniUARTExtraStatus       volatile.Register32 //0x64
	MiniUARTBAUD              volatile.Register32 //0x68
}

// mini uart: peripheral enable
const PeripheralMiniUART = 1 << 0

// mini uart: extra control bitfields
const ReceiveEnable = 1 << 0
const TransmitEnable = 1 << 1

// mini uart: line control register bitfields
//https://elinux.org/BCM2835_datasheet_errata
const DataLength8Bits = 3 << 0

// mini uart: modem control register bitfields
const ReadyToSend = 1 << 1

// mini uart: interrupt identify register bitfields
const ClearFIFOsMask = 0x6       //use with register32.ReplaceBits
const ClearReceiveFIFO = 1 << 1  //Write
const ClearTransmitFIFO = 1 << 2 //Write

// mini uart: line status register bitfields
const ReceivedDataAvailable = 1 << 0
const TransmitFIFOSpaceAvailable = 1 << 5

// mini uart: interrupt enable register bitfields
//https://elinux.org/BCM2835_datasheet_errata#p12 (does not explain two magic bits 3:2)
const AllMiniUARTInterrupts = 0xF

// gpio 14 and 15 in alt function 5 are TXD1 and RXD1
const MiniUARTTxPin = 14
const MiniUARTRxPin = 15
