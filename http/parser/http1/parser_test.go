package http1

import (
	"testing"

	"github.com/nebkat/httpstream/http/headers"
	"github.com/nebkat/httpstream/http/parser"
	"github.com/nebkat/httpstream/http/perror"
	"github.com/nebkat/httpstream/settings"
	"github.com/stretchr/testify/require"
)

// recorder is a parser.Callbacks implementation that records every
// invocation verbatim, for assertions in table-driven tests.
type recorder struct {
	headersCalls  [][]string
	bodies        []byte
	bodyCalls     int
	infos         []parser.Info
	directives    []parser.Directive
	completeCalls int
	executeCalls  int
}

func (r *recorder) OnHeaders(flatHeaders []string, url string) error {
	r.headersCalls = append(r.headersCalls, append([]string(nil), flatHeaders...))
	return nil
}

func (r *recorder) OnHeadersComplete(info *parser.Info) (parser.Directive, error) {
	r.infos = append(r.infos, snapshotInfo(info))
	return parser.ContinueBody, nil
}

// snapshotInfo copies info together with its header list: the parser
// resets that list once the message completes, so a recorder that kept
// the pointer would later see it empty.
func snapshotInfo(info *parser.Info) parser.Info {
	snap := *info
	snap.Headers = headers.New()
	for name, value := range info.Headers.Iter() {
		snap.Headers.Add(name, value)
	}

	return snap
}

func (r *recorder) OnBody(buf []byte, start, length int) error {
	r.bodies = append(r.bodies, buf[start:start+length]...)
	r.bodyCalls++
	return nil
}

func (r *recorder) OnMessageComplete() error {
	r.completeCalls++
	return nil
}

func (r *recorder) OnExecute() error {
	r.executeCalls++
	return nil
}

// directiveRecorder wraps recorder but returns a caller-chosen directive
// from OnHeadersComplete, for tests exercising the skip-body branches.
type directiveRecorder struct {
	recorder
	directive parser.Directive
}

func (r *directiveRecorder) OnHeadersComplete(info *parser.Info) (parser.Directive, error) {
	r.infos = append(r.infos, snapshotInfo(info))
	return r.directive, nil
}

func newTestParser(mode parser.Mode, cb parser.Callbacks) *Parser {
	return New(mode, settings.Default(), cb)
}

func settingsSmallHeaderCap() settings.Config {
	cfg := settings.Default()
	cfg.Headers.Bytes.Default = 32
	cfg.Headers.Bytes.Maximal = 64
	return cfg
}

func TestMinimalGET(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	consumed, stop, err := p.Execute([]byte("GET / HTTP/1.1\r\nHost: x\r\n\r\n"))

	require.NoError(t, err)
	require.False(t, stop)
	require.Equal(t, 27, consumed)
	require.Len(t, rec.infos, 1)
	require.Equal(t, "/", rec.infos[0].URL)
	require.Equal(t, []string{"Host", "x"}, rec.infos[0].Headers.Flat())
	require.True(t, rec.infos[0].ShouldKeepAlive)
	require.False(t, rec.infos[0].Upgrade)
	require.Equal(t, 1, rec.completeCalls)
	require.Equal(t, 0, rec.bodyCalls)
}

func TestContentLengthBodySplitAcrossChunks(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	full := "POST /p HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"
	chunks := [][]byte{[]byte(full[:20]), []byte(full[20:25]), []byte(full[25:])}

	var total int
	for _, c := range chunks {
		n, stop, err := p.Execute(c)
		require.NoError(t, err)
		require.False(t, stop)
		total += n
	}

	require.Equal(t, len(full), total)
	require.Equal(t, "hello", string(rec.bodies))
	require.Equal(t, 1, rec.completeCalls)
}

func TestChunkedWithTrailers(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	input := "POST / HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\nX-Trace: abc\r\n\r\n"
	_, stop, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.False(t, stop)
	require.Equal(t, "hello", string(rec.bodies))
	require.Len(t, rec.headersCalls, 1)
	require.Equal(t, []string{"X-Trace", "abc"}, rec.headersCalls[0])
	require.Equal(t, 1, rec.completeCalls)
}

func TestConflictingContentLength(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	input := "POST / HTTP/1.1\r\nContent-Length: 5\r\nContent-Length: 6\r\n\r\n"
	_, _, err := p.Execute([]byte(input))

	require.Error(t, err)
	require.Equal(t, perror.ErrUnexpectedContentLength, err)
}

func TestConnectUpgrade(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	input := "CONNECT host:443 HTTP/1.1\r\n\r\nextra-bytes"
	consumed, stop, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.True(t, stop)
	require.True(t, rec.infos[0].Upgrade)
	require.Less(t, consumed, len(input))
}

func TestHeaderOverflow(t *testing.T) {
	rec := &recorder{}
	cfg := settingsSmallHeaderCap()
	p := New(parser.Request, cfg, rec)

	big := make([]byte, 200)
	for i := range big {
		big[i] = 'a'
	}

	input := "GET / HTTP/1.1\r\nX-Big: " + string(big) + "\r\n\r\n"
	_, _, err := p.Execute([]byte(input))

	require.Error(t, err)
}

func TestHeaderCountOverflow(t *testing.T) {
	rec := &recorder{}
	cfg := settings.Default()
	cfg.Headers.Count.Maximal = 2
	p := New(parser.Request, cfg, rec)

	input := "GET / HTTP/1.1\r\nA: 1\r\nB: 2\r\nC: 3\r\n\r\n"
	_, _, err := p.Execute([]byte(input))

	require.Error(t, err)
	require.Equal(t, perror.ErrHeaderOverflow, err)
}

func TestPipelinedRequests(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	input := "GET /a HTTP/1.1\r\nHost: x\r\n\r\nGET /b HTTP/1.1\r\nHost: x\r\n\r\n"
	_, stop, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.False(t, stop)
	require.Len(t, rec.infos, 2)
	require.Equal(t, "/a", rec.infos[0].URL)
	require.Equal(t, "/b", rec.infos[1].URL)
	require.Equal(t, 2, rec.completeCalls)
}

// TestDirectiveSkipBody exercises a host telling the parser there is no
// body on the wire despite Content-Length claiming otherwise (e.g. a
// response to a HEAD request): the bytes right after the blank line
// belong to the next pipelined message, not to a body.
func TestDirectiveSkipBody(t *testing.T) {
	rec := &directiveRecorder{directive: parser.SkipBody}
	p := newTestParser(parser.Request, rec)

	input := "GET / HTTP/1.1\r\nContent-Length: 5\r\n\r\nGET /next HTTP/1.1\r\n\r\n"
	_, stop, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.False(t, stop)
	require.Equal(t, 0, rec.bodyCalls)
	require.Equal(t, 2, rec.completeCalls)
	require.Equal(t, "/next", rec.infos[1].URL)
}

func TestDirectiveSkipBodyNoData(t *testing.T) {
	rec := &directiveRecorder{directive: parser.SkipBodyNoData}
	p := newTestParser(parser.Request, rec)

	input := "HEAD / HTTP/1.1\r\nContent-Length: 5\r\n\r\n"
	_, stop, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.False(t, stop)
	require.Equal(t, 1, rec.completeCalls)
}

func TestFinishOnBodyRaw(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Response, rec)

	input := "HTTP/1.1 200 OK\r\nConnection: close\r\n\r\nsome unsized body"
	_, stop, err := p.Execute([]byte(input))
	require.NoError(t, err)
	require.False(t, stop)
	require.Equal(t, 0, rec.completeCalls)

	require.NoError(t, p.Finish())
	require.Equal(t, 1, rec.completeCalls)
}

func TestFinishMidHeaderIsInvalidEOF(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	_, _, err := p.Execute([]byte("GET / HTTP/1.1\r\nHost: x\r\n"))
	require.NoError(t, err)

	require.Error(t, p.Finish())
}

func TestHadErrorIsFixedPoint(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Request, rec)

	_, _, err := p.Execute([]byte("BOGUS / HTTP/1.1\r\n\r\n"))
	require.Error(t, err)

	consumed, stop, err2 := p.Execute([]byte("GET / HTTP/1.1\r\n\r\n"))
	require.Equal(t, err, err2)
	require.Equal(t, 0, consumed)
	require.False(t, stop)
}

func TestResponseStatusLine(t *testing.T) {
	rec := &recorder{}
	p := newTestParser(parser.Response, rec)

	input := "HTTP/1.1 204 No Content\r\n\r\n"
	_, _, err := p.Execute([]byte(input))

	require.NoError(t, err)
	require.Equal(t, 204, rec.infos[0].StatusCode)
	require.Equal(t, "No Content", rec.infos[0].StatusReason)
	require.Equal(t, 1, rec.completeCalls)
}

func TestArbitraryChunkBoundaryPartitioningMatchesWholeInput(t *testing.T) {
	input := []byte("POST /p HTTP/1.1\r\nContent-Length: 11\r\nX-A: 1\r\n\r\nhello world")

	whole := &recorder{}
	p1 := newTestParser(parser.Request, whole)
	_, _, err := p1.Execute(input)
	require.NoError(t, err)

	for _, cycle := range [][]int{
		{1},
		{5, 30, 100},
		{len(input)},
		{3, 1, 7, 2},
	} {
		split := &recorder{}
		p2 := newTestParser(parser.Request, split)

		offset, i := 0, 0
		for offset < len(input) {
			size := cycle[i%len(cycle)]
			i++

			end := offset + size
			if end > len(input) {
				end = len(input)
			}

			_, _, err := p2.Execute(input[offset:end])
			require.NoError(t, err)
			offset = end
		}

		require.Equal(t, whole.bodies, split.bodies)
		require.Equal(t, whole.completeCalls, split.completeCalls)
		require.Equal(t, len(whole.infos), len(split.infos))
		require.Equal(t, whole.infos[0].URL, split.infos[0].URL)
	}
}
