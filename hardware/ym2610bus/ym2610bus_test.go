package ym2610bus_test

import (
	"testing"

	"github.com/sekai-retro/neocore/hardware/ym2610bus"
	"github.com/sekai-retro/neocore/test"
)

func TestSampleRingPullDrainsInOrder(t *testing.T) {
	r := ym2610bus.NewSampleRing(8)
	r.Push([]int16{1, 2, 3})

	out := make([]int16, 3)
	n := r.Pull(out)
	test.Equate(t, n, 3)
	test.Equate(t, out, []int16{1, 2, 3})
}

func TestSampleRingOverwritesOldestWhenFull(t *testing.T) {
	r := ym2610bus.NewSampleRing(4)
	r.Push([]int16{1, 2, 3, 4})
	r.Push([]int16{5, 6}) // overwrites 1, 2

	out := make([]int16, 4)
	n := r.Pull(out)
	test.Equate(t, n, 4)
	test.Equate(t, out, []int16{3, 4, 5, 6})
}

func TestSampleRingPullEmptyReturnsZero(t *testing.T) {
	r := ym2610bus.NewSampleRing(4)
	out := make([]int16, 4)
	test.Equate(t, r.Pull(out), 0)
}
