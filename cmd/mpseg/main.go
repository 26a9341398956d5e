// Command mpseg decodes segmentation inference responses, either saved to
// disk or fetched from an inference endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/zeebo/xxh3"

	"github.com/ohif-tools/mpseg"
)

const usage = `usage: mpseg <command> [flags]

commands:
  decode   decode a saved response body
  fetch    post an image to an inference endpoint and decode the response
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:], os.Stdout)
	case "fetch":
		err = runFetch(ctx, os.Args[2:], os.Stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "mpseg: unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "mpseg:", err)
		os.Exit(1)
	}
}

type decodeFlags struct {
	out         string
	debug       bool
	allEncs     bool
	passthrough bool
}

func (f *decodeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.out, "out", ".", "directory to write meta.json and seg.dcm to")
	fs.BoolVar(&f.debug, "debug", false, "log scanning and decompression details")
	fs.BoolVar(&f.allEncs, "all-encodings", false, "also undo deflate, br and zstd")
	fs.BoolVar(&f.passthrough, "keep-encoded-seg", false, "write seg still encoded when it cannot be decompressed")
}

func (f *decodeFlags) decoder() *mpseg.Decoder {
	d := mpseg.NewDecoder().SetLogger(mpseg.NewFromStandardLogger(log.New(os.Stderr, "", log.LstdFlags)))
	if f.debug {
		d.EnableDebugLog()
	}
	if f.allEncs {
		d.EnableAllDecompressors()
	}
	if f.passthrough {
		d.EnableEncodedSegPassthrough()
	}
	return d
}

func runDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var (
		df              decodeFlags
		bodyPath        string
		contentType     string
		contentEncoding string
	)
	df.register(fs)
	fs.StringVar(&bodyPath, "body", "", "file holding the raw response body")
	fs.StringVar(&contentType, "content-type", "", "Content-Type of the response")
	fs.StringVar(&contentEncoding, "content-encoding", "", "Content-Encoding of the response")
	fs.Parse(args)
	if bodyPath == "" {
		return errors.New("decode: -body is required")
	}
	body, err := os.ReadFile(bodyPath)
	if err != nil {
		return err
	}
	h := http.Header{}
	h.Set("Content-Type", contentType)
	if contentEncoding != "" {
		h.Set("Content-Encoding", contentEncoding)
	}
	result, err := df.decoder().Decode(body, h)
	if err != nil {
		return err
	}
	return writeResult(stdout, df.out, result)
}

func runFetch(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	var (
		df        decodeFlags
		url       string
		imagePath string
		field     string
		timeout   time.Duration
		retries   int
	)
	df.register(fs)
	fs.StringVar(&url, "url", "", "inference endpoint")
	fs.StringVar(&imagePath, "image", "", "image file to upload")
	fs.StringVar(&field, "field", "file", "multipart field name of the uploaded image")
	fs.DurationVar(&timeout, "timeout", 5*time.Minute, "request timeout")
	fs.IntVar(&retries, "retry", 0, "number of retries on transport errors")
	fs.Parse(args)
	if url == "" {
		return errors.New("fetch: -url is required")
	}

	client := req.C().
		SetTimeout(timeout).
		DisableAutoDecode().
		SetCommonRetryCount(retries)
	if df.debug {
		client.EnableDebugLog()
	}
	r := client.R().SetContext(ctx)
	if imagePath != "" {
		r.SetFile(field, imagePath)
	}
	resp, err := r.Post(url)
	if err != nil {
		return err
	}
	if resp.IsErrorState() {
		return fmt.Errorf("fetch: %s: %s", resp.Status, resp.String())
	}
	result, err := df.decoder().Decode(resp.Bytes(), resp.Header)
	if err != nil {
		return err
	}
	return writeResult(stdout, df.out, result)
}

// segFileName names the seg output after the codings still applied to it,
// e.g. seg.dcm.br.gzip.
func segFileName(encoding string) string {
	name := "seg.dcm"
	for _, enc := range strings.Split(encoding, ",") {
		if enc = strings.TrimSpace(enc); enc != "" {
			name += "." + enc
		}
	}
	return name
}

func writeResult(w io.Writer, dir string, result *mpseg.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), result.RawMeta, 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, segFileName(result.SegEncoding)), result.Seg, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "meta: %d bytes\n", len(result.RawMeta))
	fmt.Fprintf(w, "seg:  %d bytes xxh3=%016x", len(result.Seg), xxh3.Hash(result.Seg))
	if result.SegEncoding != "" {
		fmt.Fprintf(w, " (still %s encoded)", result.SegEncoding)
	}
	fmt.Fprintln(w)
	return nil
}
