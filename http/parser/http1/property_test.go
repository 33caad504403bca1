package http1

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/nebkat/httpstream/http/parser"
	"github.com/stretchr/testify/require"
)

// randomPartition splits n bytes into a random sequence of chunk sizes,
// each at least 1, summing exactly to n.
func randomPartition(rng *rand.Rand, n int) []int {
	if n == 0 {
		return nil
	}

	var sizes []int
	remaining := n

	for remaining > 0 {
		size := 1 + rng.Intn(remaining)
		sizes = append(sizes, size)
		remaining -= size
	}

	return sizes
}

// fixtureRequest builds a syntactically valid request around a random
// body, using uniuri for the header value and the body payload so
// successive runs exercise different byte content and lengths.
func fixtureRequest(bodyLen int) []byte {
	body := uniuri.NewLen(bodyLen)
	trace := uniuri.New()

	req := "POST /upload HTTP/1.1\r\n" +
		"Host: example.test\r\n" +
		"X-Trace: " + trace + "\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"\r\n" + body

	return []byte(req)
}

// TestArbitraryPartitioningIsIdentical checks the universal property
// that matters most for an incremental parser: for any partition of a
// request into chunks of at least one byte, the callback sequence and
// parsed fields must match feeding it whole.
func TestArbitraryPartitioningIsIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		input := fixtureRequest(1 + rng.Intn(512))

		whole := &recorder{}
		pw := newTestParser(parser.Request, whole)
		_, _, err := pw.Execute(input)
		require.NoError(t, err)

		sizes := randomPartition(rng, len(input))

		split := &recorder{}
		ps := newTestParser(parser.Request, split)

		offset := 0
		for _, size := range sizes {
			n, stop, err := ps.Execute(input[offset : offset+size])
			require.NoError(t, err)
			require.False(t, stop)
			require.LessOrEqual(t, n, size)
			offset += size
		}

		require.Equal(t, whole.bodies, split.bodies)
		require.Equal(t, whole.completeCalls, split.completeCalls)
		require.Len(t, split.infos, 1)
		require.Equal(t, whole.infos[0].URL, split.infos[0].URL)
		require.Equal(t, whole.infos[0].Headers.Flat(), split.infos[0].Headers.Flat())
	}
}

// TestExecuteNeverOverconsumes checks the second universal property:
// execute never reports consuming more bytes than it was given.
func TestExecuteNeverOverconsumes(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	input := fixtureRequest(64)

	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	for _, size := range randomPartition(rng, len(input)) {
		n, _, err := p.Execute(input[:size])
		require.NoError(t, err)
		require.LessOrEqual(t, n, size)
		input = input[size:]

		if len(input) == 0 {
			break
		}
	}
}
