// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command flowpipe pipes os.Stdin to os.Stdout through a flow-controlled
// byte channel, the runnable proof that the core state machine behaves
// correctly end-to-end: it wires real credit-based backpressure between a
// feeder and a drainer goroutine instead of handing raw bytes across a Go
// channel.
package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/flowbyte/winchan"
)

// VERSION is injected by buildflags.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	app := cli.NewApp()
	app.Name = "flowpipe"
	app.Usage = "pipe stdin to stdout through a flow-controlled byte channel"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "windowsize,w",
			Value: 65536,
			Usage: "initial flow-control window, in bytes",
		},
		cli.IntFlag{
			Name:  "chunksize,s",
			Value: 4096,
			Usage: "maximum size of a single read/push/poll",
		},
		cli.StringFlag{
			Name:  "key",
			Value: "",
			Usage: "passphrase for -crypt; an empty passphrase is used, with a warning, if unset",
		},
		cli.BoolFlag{
			Name:  "comp",
			Usage: "read snappy-compressed stdin and write snappy-compressed stdout",
		},
		cli.BoolFlag{
			Name:  "crypt",
			Usage: "read AES-256-CTR encrypted stdin and write AES-256-CTR encrypted stdout, keyed from -key",
		},
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command line parameters",
		},
		cli.BoolFlag{
			Name:  "quiet,q",
			Usage: "suppress logging of push and write failures",
		},
	}
	app.Action = run

	app.Run(os.Args)
}

func run(c *cli.Context) error {
	config := Config{
		WindowSize: c.Int("windowsize"),
		ChunkSize:  c.Int("chunksize"),
		Key:        c.String("key"),
		Comp:       c.Bool("comp"),
		Crypt:      c.Bool("crypt"),
		Quiet:      c.Bool("quiet"),
	}

	if c.String("c") != "" {
		checkError(parseJSONConfig(&config, c.String("c")))
	}

	if config.Crypt && config.Key == "" {
		color.Red("WARNING: -crypt was set without -key; encrypting with an empty passphrase.")
	}
	if config.WindowSize <= 0 {
		color.Red("WARNING: windowsize must be positive, got %d; forcing 1.", config.WindowSize)
		config.WindowSize = 1
	}

	log.Println("version:", VERSION)
	log.Println("windowsize:", config.WindowSize)
	log.Println("chunksize:", config.ChunkSize)
	log.Println("compression:", config.Comp)
	log.Println("encryption:", config.Crypt)

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout

	if config.Crypt {
		r, err := newDecryptReader(in, config.Key)
		checkError(err)
		in = r

		w, err := newEncryptWriter(out, config.Key)
		checkError(err)
		out = w
	}
	if config.Comp {
		in = newDecompressReader(in)
		w := newCompressWriter(out)
		defer w.Close()
		out = w
	}

	sender, receiver, advertiser := winchan.New[error](config.WindowSize)

	done := make(chan error, 1)
	go func() {
		feed(in, sender, advertiser, config.ChunkSize, config.Quiet)
	}()
	go func() {
		done <- drain(receiver, out, config.ChunkSize, config.Quiet)
	}()

	if err := <-done; err != nil {
		return errors.Wrap(err, "flowpipe")
	}
	return nil
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}
