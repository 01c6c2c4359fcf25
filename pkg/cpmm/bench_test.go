package cpmm

import (
	"math/big"
	"testing"
)

func BenchmarkAmountOut_NoAlloc(b *testing.B) {
	balIn := new(big.Int).SetUint64(13_451_234_567_890)
	balOut := new(big.Int).SetUint64(98_765_432_109_876)
	in := new(big.Int).SetUint64(1_000_000)
	k := new(big.Int).Mul(balIn, balOut)
	dst := new(big.Int)
	t1 := new(big.Int)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AmountOut(dst, t1, balIn, balOut, in, k)
	}
}
