package plir

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/minio/sha256-simd"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

var vectors = []struct {
	msg            string
	rounds, stages int
	want           string
}{
	{"abc", 8, 1, "11ef4bc5a55b90c4957d5ace24380cadca5f675da8efe6e7918f52efc0912251"},
	{"", 8, 1, "e2799dfff96cca8cc4a5c1af8ed91352e9b9db4894810336736904907e06b6de"},
	{"abc", 8, 2, "eae5caab19ad05307905b15993d6cc73ad9d74f27fe00250316b97ac7cdb5e7b"},
	{"abc", 16, 1, "cd5beed45c487780fffed78a2fc2f2eea8113bb0169ead2b69ce8987d330d4d1"},
	{"plir", 1, 1, "2cda2e1216c254d34a14b5db06933c240bba15957849b0c45906cc2cdd528f4a"},
	{"    ", 8, 1, "de8553c5c099bbe46983eaef73a00b7ce7aea10ede367f98eb9f219d2fee400d"},
	{"hello world", 8, 3, "9eaaba24ee6ecf0a5272681d23a21dd7bbdb9ffc87f46ae42d6c5c23e1107e68"},
	{"The quick brown fox jumps over the lazy dog", 8, 1,
		"590dd2813b7da7d975abeed33f2f091a7c572f3452bea7740949b7163605d827"},
	{strings.Repeat("a", 5000), 8, 1, "da5397e6a202e50c4965fe4928d4db93cb5d7b4c0b00b79fdf0f54c4f8e8ae91"},
}

func TestIV(t *testing.T) {
	two32 := new(big.Float).SetMantExp(big.NewFloat(1), 32)
	for i, p := range []int64{2, 3, 5, 7, 11, 13, 17, 19} {
		root := new(big.Float).SetPrec(128).SetInt64(p)
		root.Sqrt(root)
		whole, _ := root.Int(nil)
		root.Sub(root, new(big.Float).SetInt(whole)).Mul(root, two32)
		frac, _ := root.Uint64()
		require.Equal(t, uint32(frac), IV[i], "prime %d", p)
	}
}

func TestMix(t *testing.T) {
	require.Equal(t, uint32(0x1080f), mix(1, 2))
	require.Equal(t, uint32(0x9055), mix(2, 1))
	require.Equal(t, uint32(0xd6448334), mix(GoldenRatio, IV[0]))
}

func TestExpand(t *testing.T) {
	require.Equal(t, []uint32{0x2063ff37}, expand(nil, []byte("abc"), DefaultPad))
	require.Equal(t, []uint32{0x0063ff37}, expand(nil, []byte("abc"), 0))
	require.Equal(t, []uint32{0x6462cc25, 0x6846284b}, expand(nil, []byte("abcdefgh"), DefaultPad))

	/* Empty messages expand to one block of padding instead of nothing. */
	require.Equal(t, []uint32{0x20202020}, expand(nil, nil, DefaultPad))
	require.Equal(t, []uint32{0}, expand(nil, []byte{}, 0))

	for n := 1; n <= 17; n++ {
		require.Len(t, expand(nil, make([]byte, n), DefaultPad), (n+3)/4)
	}

	/* dst is reused from its start. */
	buf := make([]uint32, 8)
	require.Equal(t, []uint32{0x2063ff37}, expand(buf, []byte("abc"), DefaultPad))
}

func TestSumVectors(t *testing.T) {
	for _, v := range vectors {
		got, err := Sum([]byte(v.msg), v.rounds, v.stages)
		require.NoError(t, err)
		require.Equal(t, v.want, got, "%.16q rounds=%d stages=%d", v.msg, v.rounds, v.stages)
	}
}

func TestSumZeroPadding(t *testing.T) {
	c := DefaultConfig()
	c.Pad = 0
	got, err := c.Sum([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, "b64f8e5db62663886e484383889608783d7235933618a2a37b6431ce6bab4f23", got)

	/* With zero padding, an empty message is one zero-valued block. */
	empty, err := c.Sum(nil)
	require.NoError(t, err)
	zeroes, err := c.Sum(make([]byte, 4))
	require.NoError(t, err)
	require.Equal(t, zeroes, empty)
}

func TestSumFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		msg := make([]byte, rng.Intn(300))
		rng.Read(msg)
		got, err := Sum(msg, DefaultRounds, 1+rng.Intn(3))
		require.NoError(t, err)
		require.Len(t, got, HexSize)
		require.Equal(t, strings.Trim(got, "0123456789abcdef"), "")

		again, err := Sum(msg, DefaultRounds, 1)
		require.NoError(t, err)
		again2, err := Sum(msg, DefaultRounds, 1)
		require.NoError(t, err)
		require.Equal(t, again, again2)
	}
}

func TestSumInvalid(t *testing.T) {
	_, err := Sum([]byte("abc"), 0, 1)
	require.ErrorIs(t, err, ErrRounds)
	_, err = Sum([]byte("abc"), 8, 0)
	require.ErrorIs(t, err, ErrStages)

	c := DefaultConfig()
	c.ChunkSize = 0
	_, err = c.New()
	require.ErrorIs(t, err, ErrChunkSize)
	_, err = c.SumStream([]byte("abc"))
	require.ErrorIs(t, err, ErrChunkSize)

	for _, size := range []int{MaxChunkSize + 1, math.MaxInt} {
		c.ChunkSize = size
		require.ErrorIs(t, c.Validate(), ErrChunkSize)
		_, err = c.New()
		require.ErrorIs(t, err, ErrChunkSize)
		_, err = SumReader(context.Background(), strings.NewReader("abc"), c)
		require.ErrorIs(t, err, ErrChunkSize)
	}
}

func TestLargestChunk(t *testing.T) {
	c := DefaultConfig()
	c.ChunkSize = MaxChunkSize
	want, err := c.Sum([]byte("abc"))
	require.NoError(t, err)

	got, err := c.SumStream([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, want, got)

	got, err = SumReader(context.Background(), strings.NewReader("abc"), c)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDigestZeroValue(t *testing.T) {
	var d Digest
	n, err := d.Write([]byte("abc"))
	require.ErrorIs(t, err, ErrChunkSize)
	require.Zero(t, n)

	n, err = d.Write(nil)
	require.ErrorIs(t, err, ErrChunkSize)
	require.Zero(t, n)
}

func TestChainSteps(t *testing.T) {
	c := DefaultConfig()
	for _, msg := range []string{"", "abc", "hello world", strings.Repeat("xyz", 100)} {
		first := c.Stage([]byte(msg), 0).String()
		fold, err := strconv.ParseUint(first[:8], 16, 32)
		require.NoError(t, err)
		second := c.Stage([]byte(first), uint32(fold)).String()

		got, err := Sum([]byte(msg), DefaultRounds, 2)
		require.NoError(t, err)
		require.Equal(t, second, got)

		third := c.Stage([]byte(second), uint32(fold)^c.Stage([]byte(first), uint32(fold))[0]).String()
		got, err = Sum([]byte(msg), DefaultRounds, 3)
		require.NoError(t, err)
		require.Equal(t, third, got)
	}
}

func TestAvalanche(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		msg := make([]byte, 1+rng.Intn(200))
		rng.Read(msg)
		a, err := Sum(msg, DefaultRounds, 1)
		require.NoError(t, err)

		msg[rng.Intn(len(msg))] ^= byte(1 + rng.Intn(255))
		b, err := Sum(msg, DefaultRounds, 1)
		require.NoError(t, err)

		var diff int
		for k := range a {
			if a[k] != b[k] {
				diff++
			}
		}
		require.Greater(t, diff, HexSize/4, "%x", msg)
	}
}

func TestStateRender(t *testing.T) {
	s := State{0, 1, 0xdeadbeef, 0xffffffff, 0x10, 0x100, 0x1000, 0x10000000}
	require.Equal(t, "0000000000000001deadbeefffffffff00000010000001000000100010000000", s.String())
	b := s.Bytes()
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b[8:12])
}

func TestEqual(t *testing.T) {
	a, _ := Sum([]byte("abc"), DefaultRounds, 1)
	require.True(t, Equal(a, strings.ToUpper(a)))
	require.False(t, Equal(a, a[:63]))
	require.False(t, Equal(a, strings.Repeat("0", 64)))
}

func TestStreamVectors(t *testing.T) {
	msg := make([]byte, 10000)
	for i := range msg {
		msg[i] = byte(i % 251)
	}
	c := DefaultConfig()
	got, err := c.SumStream(msg)
	require.NoError(t, err)
	require.Equal(t, "23d460da3eb9580ba80b4405b5ee98d7df2cffec40c939ae89e1717be4bc00fe", got)

	c.ChunkSize = 64
	got, err = c.SumStream(msg)
	require.NoError(t, err)
	require.Equal(t, "232d04f21bcb1402c45044ef159002ab92472b2438bebf020e1687d1ae564e86", got)

	/* Beyond one chunk, the modes diverge. */
	got, err = DefaultConfig().SumStream([]byte(strings.Repeat("a", 5000)))
	require.NoError(t, err)
	require.Equal(t, "c2f2568c3a0440659f05a201aee83b96a5bc3600ea20eee407aa5c0064d38b66", got)
}

func TestStreamMatchesChainWithinOneChunk(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := DefaultConfig()
	for _, n := range []int{0, 1, 3, 4, 5, 63, 1000, DefaultChunkSize} {
		msg := make([]byte, n)
		rng.Read(msg)
		chain, err := c.Sum(msg)
		require.NoError(t, err)
		stream, err := c.SumStream(msg)
		require.NoError(t, err)
		require.Equal(t, chain, stream, "length %d", n)
	}
}

func TestStreamSplits(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c := DefaultConfig()
	c.ChunkSize = 100
	for i := 0; i < 50; i++ {
		msg := make([]byte, rng.Intn(1000))
		rng.Read(msg)
		want, err := c.SumStream(msg)
		require.NoError(t, err)

		d, err := c.New()
		require.NoError(t, err)
		for rest := msg; len(rest) > 0; {
			n := rng.Intn(len(rest) + 1)
			w, err := d.Write(rest[:n])
			require.NoError(t, err)
			require.Equal(t, n, w)
			rest = rest[n:]
		}
		require.Equal(t, want, d.String())

		got, err := SumReader(context.Background(), iotest.OneByteReader(bytes.NewReader(msg)), c)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDigestHash(t *testing.T) {
	h := NewHash()
	require.Equal(t, Size, h.Size())
	require.Equal(t, DefaultChunkSize, h.BlockSize())

	_, _ = h.Write([]byte("ab"))
	partial := h.Sum(nil)
	_, _ = h.Write([]byte("c"))
	sum := h.Sum([]byte{0xff})
	require.Len(t, sum, Size+1)
	require.Equal(t, byte(0xff), sum[0])
	require.NotEqual(t, partial, sum[1:])

	want, _ := Sum([]byte("abc"), DefaultRounds, 1)
	require.Equal(t, want, h.(*Digest).String())
	require.Equal(t, h.Sum(nil), sum[1:]) /* Sum does not disturb the state. */

	h.Reset()
	empty, _ := Sum(nil, DefaultRounds, 1)
	require.Equal(t, empty, h.(*Digest).String())
}

func TestSumReaderErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := SumReader(context.Background(), iotest.ErrReader(boom), DefaultConfig())
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = SumReader(ctx, bytes.NewReader([]byte("abc")), DefaultConfig())
	require.ErrorIs(t, err, context.Canceled)
}

var benchMsg = make([]byte, 1<<20)

func BenchmarkSum(b *testing.B) {
	b.SetBytes(int64(len(benchMsg)))
	b.ReportAllocs()
	for i := b.N; i > 0; i-- {
		_, _ = Sum(benchMsg, DefaultRounds, 1)
	}
}

func BenchmarkStream(b *testing.B) {
	d, _ := DefaultConfig().New()
	sum := make([]byte, 0, Size)
	b.SetBytes(int64(len(benchMsg)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		_, _ = d.Write(benchMsg)
		d.Sum(sum[:0])
		d.Reset()
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(benchMsg)))
	for i := b.N; i > 0; i-- {
		sha256.Sum256(benchMsg)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(benchMsg)))
	for i := b.N; i > 0; i-- {
		blake3.Sum256(benchMsg)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(benchMsg)))
	for i := b.N; i > 0; i-- {
		xxh3.Hash128(benchMsg)
	}
}
