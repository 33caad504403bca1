// Command httpdump reads a raw HTTP/1.x request or response from stdin
// (in arbitrarily-sized reads, exercising the same resumable Execute
// path a real socket would) and prints one JSON object per parsed
// message. It exists as a thin demonstration of the parser package.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/nebkat/httpstream/http/method"
	"github.com/nebkat/httpstream/http/parser"
	"github.com/nebkat/httpstream/http/parser/http1"
	"github.com/nebkat/httpstream/settings"
)

var response = flag.Bool("response", false, "parse stdin as an HTTP response instead of a request")

// message is the JSON-friendly rendering of one parsed request or
// response, assembled by dumper as callbacks arrive.
type message struct {
	Method          string            `json:"method,omitempty"`
	URL             string            `json:"url,omitempty"`
	StatusCode      int               `json:"status_code,omitempty"`
	StatusReason    string            `json:"status_reason,omitempty"`
	Version         string            `json:"version"`
	Headers         map[string]string `json:"headers"`
	Trailers        map[string]string `json:"trailers,omitempty"`
	Upgrade         bool              `json:"upgrade"`
	ShouldKeepAlive bool              `json:"should_keep_alive"`
	BodySize        int               `json:"body_size"`
}

// dumper implements parser.Callbacks, buffering one message at a time
// and writing it out as JSON once on_message_complete fires.
type dumper struct {
	out  io.Writer
	mode parser.Mode
	cur  message
}

func newDumper(out io.Writer, mode parser.Mode) *dumper {
	return &dumper{out: out, mode: mode, cur: newMessage()}
}

func newMessage() message {
	return message{Headers: map[string]string{}}
}

func (d *dumper) OnHeaders(flatHeaders []string, _ string) error {
	if d.cur.Trailers == nil {
		d.cur.Trailers = map[string]string{}
	}

	for i := 0; i+1 < len(flatHeaders); i += 2 {
		d.cur.Trailers[flatHeaders[i]] = flatHeaders[i+1]
	}

	return nil
}

func (d *dumper) OnHeadersComplete(info *parser.Info) (parser.Directive, error) {
	d.cur.Version = fmt.Sprintf("HTTP/%d.%d", info.VersionMajor, info.VersionMinor)
	d.cur.Upgrade = info.Upgrade
	d.cur.ShouldKeepAlive = info.ShouldKeepAlive

	if d.mode == parser.Request {
		d.cur.Method = method.Name(info.MethodIndex)
		d.cur.URL = info.URL
	} else {
		d.cur.StatusCode = info.StatusCode
		d.cur.StatusReason = info.StatusReason
	}

	for name, value := range info.Headers.Iter() {
		d.cur.Headers[name] = value
	}

	return parser.ContinueBody, nil
}

func (d *dumper) OnBody(_ []byte, _, length int) error {
	d.cur.BodySize += length
	return nil
}

func (d *dumper) OnMessageComplete() error {
	if err := jsoniter.NewEncoder(d.out).Encode(d.cur); err != nil {
		return err
	}

	d.cur = newMessage()

	return nil
}

func (d *dumper) OnExecute() error { return nil }

func main() {
	flag.Parse()

	mode := parser.Request
	if *response {
		mode = parser.Response
	}

	d := newDumper(os.Stdout, mode)
	p := http1.New(mode, settings.Default(), d)

	buf := make([]byte, 4096)

	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			if _, _, execErr := p.Execute(buf[:n]); execErr != nil {
				log.Fatalf("httpdump: %v", execErr)
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("httpdump: reading stdin: %v", err)
		}
	}

	if err := p.Finish(); err != nil {
		log.Fatalf("httpdump: %v", err)
	}
}
