package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gbasim/emu"
)

var allModes = []emu.Mode{
	emu.ModeUser, emu.ModeFiq, emu.ModeIrq, emu.ModeSvc,
	emu.ModeAbt, emu.ModeUnd, emu.ModeSystem,
}

var privilegedBankedModes = []emu.Mode{
	emu.ModeFiq, emu.ModeIrq, emu.ModeSvc, emu.ModeAbt, emu.ModeUnd,
}

func readReg(r *emu.RegFile, index int) uint32 {
	GinkgoHelper()
	v, err := r.Read(index)
	Expect(err).NotTo(HaveOccurred())
	return v
}

func writeReg(r *emu.RegFile, index int, value uint32) {
	GinkgoHelper()
	Expect(r.Write(index, value)).To(Succeed())
}

func enterMode(r *emu.RegFile, m emu.Mode) {
	GinkgoHelper()
	Expect(r.PSR().SetMode(m)).To(Succeed())
}

var _ = Describe("RegFile", func() {
	var r *emu.RegFile

	BeforeEach(func() {
		r = emu.NewRegFile()
	})

	Describe("construction", func() {
		It("should start in User mode with all registers zero", func() {
			Expect(r.PSR().Mode()).To(Equal(emu.ModeUser))
			for i := 0; i < emu.RegCPSR; i++ {
				Expect(readReg(r, i)).To(Equal(uint32(0)))
			}
			Expect(readReg(r, emu.RegCPSR)).To(Equal(uint32(emu.ModeUser)))
		})

		It("should export a snapshot that is zero except for CPSR", func() {
			snap := r.Snapshot()
			Expect(snap).To(HaveLen(emu.SnapshotLen))
			for i, w := range snap {
				if i == emu.RegCPSR {
					Expect(w).To(Equal(uint32(emu.ModeUser)))
				} else {
					Expect(w).To(BeZero())
				}
			}
		})
	})

	Describe("index validation", func() {
		It("should reject reads outside 0..16", func() {
			_, err := r.Read(emu.NumRegs)
			Expect(err).To(MatchError(emu.ErrRegisterIndex))

			_, err = r.Read(-1)
			Expect(err).To(MatchError(emu.ErrRegisterIndex))
		})

		It("should reject writes outside 0..16", func() {
			Expect(r.Write(emu.NumRegs, 1)).To(MatchError(emu.ErrRegisterIndex))
			Expect(r.Write(36, 1)).To(MatchError(emu.ErrRegisterIndex))
		})

		It("should not touch banked storage on a rejected write", func() {
			before := r.Snapshot()
			Expect(r.Write(17, 0xDEADBEEF)).ToNot(Succeed())
			Expect(r.Snapshot()).To(Equal(before))
		})
	})

	Describe("unbanked registers", func() {
		It("should keep r0-r7 and PC stable across every mode", func() {
			for i := 0; i <= 7; i++ {
				writeReg(r, i, 0x1000 + uint32(i))
			}
			writeReg(r, emu.RegPC, 0x08000100)

			for _, m := range allModes {
				enterMode(r, m)
				for i := 0; i <= 7; i++ {
					Expect(readReg(r, i)).To(Equal(0x1000 + uint32(i)),
						"r%d in %v", i, m)
				}
				Expect(readReg(r, emu.RegPC)).To(Equal(uint32(0x08000100)))
			}
		})
	})

	Describe("FIQ bank", func() {
		It("should bank r8-r12 for FIQ only", func() {
			for i := 8; i <= 12; i++ {
				writeReg(r, i, 0xAA00 + uint32(i))
			}

			enterMode(r, emu.ModeFiq)
			for i := 8; i <= 12; i++ {
				Expect(readReg(r, i)).To(BeZero(), "r%d_fiq starts empty", i)
				writeReg(r, i, 0xFF00 + uint32(i))
			}

			// Every non-FIQ mode sees the original values.
			for _, m := range []emu.Mode{
				emu.ModeSvc, emu.ModeIrq, emu.ModeAbt,
				emu.ModeUnd, emu.ModeSystem, emu.ModeUser,
			} {
				enterMode(r, m)
				for i := 8; i <= 12; i++ {
					Expect(readReg(r, i)).To(Equal(0xAA00 + uint32(i)),
						"r%d in %v", i, m)
				}
			}

			enterMode(r, emu.ModeFiq)
			for i := 8; i <= 12; i++ {
				Expect(readReg(r, i)).To(Equal(0xFF00 + uint32(i)))
			}
		})
	})

	Describe("SP and LR banking", func() {
		It("should give each privileged mode its own SP and LR", func() {
			for n, m := range privilegedBankedModes {
				enterMode(r, m)
				writeReg(r, emu.RegSP, 0x0300_0000 + uint32(n))
				writeReg(r, emu.RegLR, 0x0800_0000 + uint32(n))
			}

			for n, m := range privilegedBankedModes {
				enterMode(r, m)
				Expect(readReg(r, emu.RegSP)).To(Equal(0x0300_0000 + uint32(n)),
					"SP in %v", m)
				Expect(readReg(r, emu.RegLR)).To(Equal(0x0800_0000 + uint32(n)),
					"LR in %v", m)
			}
		})

		It("should share SP and LR between User and System", func() {
			writeReg(r, emu.RegSP, 0x0300_7F00)
			writeReg(r, emu.RegLR, 0x0800_0200)

			enterMode(r, emu.ModeSystem)
			Expect(readReg(r, emu.RegSP)).To(Equal(uint32(0x0300_7F00)))
			Expect(readReg(r, emu.RegLR)).To(Equal(uint32(0x0800_0200)))

			writeReg(r, emu.RegSP, 0x0300_7E00)
			enterMode(r, emu.ModeUser)
			Expect(readReg(r, emu.RegSP)).To(Equal(uint32(0x0300_7E00)))
		})

		It("should restore User SP/LR after a Supervisor excursion", func() {
			for i := 0; i <= 7; i++ {
				writeReg(r, i, uint32(i)*3)
			}
			writeReg(r, emu.RegSP, 0x0300_7F00)
			writeReg(r, emu.RegLR, 0x0800_0040)

			enterMode(r, emu.ModeSvc)
			writeReg(r, emu.RegSP, 0x0300_7FE0)
			writeReg(r, emu.RegLR, 0x0000_0008)

			enterMode(r, emu.ModeUser)
			Expect(readReg(r, emu.RegSP)).To(Equal(uint32(0x0300_7F00)))
			Expect(readReg(r, emu.RegLR)).To(Equal(uint32(0x0800_0040)))
			for i := 0; i <= 7; i++ {
				Expect(readReg(r, i)).To(Equal(uint32(i) * 3))
			}
		})
	})

	Describe("snapshots", func() {
		It("should round-trip through export and import", func() {
			for _, m := range privilegedBankedModes {
				enterMode(r, m)
				writeReg(r, emu.RegSP, uint32(m)<<8)
			}
			enterMode(r, emu.ModeUser)
			writeReg(r, 3, 0x1234_5678)

			snap := r.Snapshot()
			restored, err := emu.NewRegFileFromSnapshot(snap)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Snapshot()).To(Equal(snap))
			Expect(readReg(restored, 3)).To(Equal(uint32(0x1234_5678)))
		})

		It("should copy on export, not alias", func() {
			snap := r.Snapshot()
			snap[0] = 0xFFFF_FFFF
			Expect(readReg(r, 0)).To(BeZero())
		})

		It("should copy on import, not alias", func() {
			words := make([]uint32, emu.SnapshotLen)
			words[emu.RegCPSR] = uint32(emu.ModeUser)
			restored, err := emu.NewRegFileFromSnapshot(words)
			Expect(err).NotTo(HaveOccurred())

			words[5] = 0xFFFF_FFFF
			Expect(readReg(restored, 5)).To(BeZero())
		})

		It("should reject snapshots of the wrong length", func() {
			for _, n := range []int{0, emu.SnapshotLen - 1, emu.SnapshotLen + 1} {
				_, err := emu.NewRegFileFromSnapshot(make([]uint32, n))
				Expect(err).To(MatchError(emu.ErrSnapshotSize))
			}
		})
	})

	Describe("corrupted status word", func() {
		It("should panic when the mode bits decode to no known mode", func() {
			r.PSR().SetRaw(0x0000_0003)
			Expect(func() { _, _ = r.Read(0) }).To(Panic())
			Expect(func() { _ = r.Write(emu.RegSP, 1) }).To(Panic())
		})
	})
})
