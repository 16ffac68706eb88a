package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lc3vm/insts"
)

var _ = Describe("SignExtend", func() {
	It("leaves a positive small value unchanged", func() {
		Expect(insts.SignExtend(0x0F, 5)).To(Equal(uint16(0x000F)))
	})

	It("sign-extends a negative 5-bit value to 16 bits", func() {
		// 0b10010 = -14 in 5-bit two's complement
		Expect(insts.SignExtend(0x12, 5)).To(Equal(uint16(0xFFF2)))
	})

	It("sign-extends a negative 9-bit offset", func() {
		// 0b1_1111_1111 = -1 in 9-bit two's complement
		Expect(insts.SignExtend(0x1FF, 9)).To(Equal(uint16(0xFFFF)))
	})

	It("passes 16-bit values through unchanged", func() {
		Expect(insts.SignExtend(0xBEEF, 16)).To(Equal(uint16(0xBEEF)))
	})

	It("round-trips: low N bits of any word sign-extend to the signed value of those bits", func() {
		for _, x := range []uint16{0, 1, 0x1234, 0x8000, 0xFFFF, 0x7FFF} {
			for n := uint(1); n <= 16; n++ {
				mask := uint16(1)<<n - 1
				if n == 16 {
					mask = 0xFFFF
				}
				low := x & mask
				got := int16(insts.SignExtend(low, n))
				shift := 16 - n
				want := int16(low<<shift) >> shift
				Expect(got).To(Equal(want))
			}
		}
	})
})

var _ = Describe("Swap16", func() {
	It("reverses byte order", func() {
		Expect(insts.Swap16(0x1234)).To(Equal(uint16(0x3412)))
	})

	It("is its own inverse", func() {
		for _, w := range []uint16{0, 1, 0xBEEF, 0xFF00, 0x00FF, 0x8001} {
			Expect(insts.Swap16(insts.Swap16(w))).To(Equal(w))
		}
	})
})
