package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/amqp-codec/buffer"
	"github.com/wippyai/amqp-codec/codec"
	"github.com/wippyai/amqp-codec/framing"
	"github.com/wippyai/amqp-codec/schema"
)

func main() {
	var (
		sets        assignments
		structName  = flag.String("struct", "", "Qualified structure or method name (e.g. message.delivery-properties)")
		decodeHex   = flag.String("decode", "", "Hex bytes to decode instead of encoding")
		framed      = flag.Bool("framed", false, "Use method framing for methods and struct32 form for typed structures")
		list        = flag.Bool("list", false, "List built-in structures and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log codec activity to stderr")
	)
	flag.Var(&sets, "set", "Field assignment name=value; nested fields as outer.inner=value (repeatable)")
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			defer func() { _ = l.Sync() }()
			schema.SetLogger(l)
			codec.SetLogger(l)
			framing.SetLogger(l)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !*list && *structName == "" && !(*framed && *decodeHex != "") {
		fmt.Fprintln(os.Stderr, "Usage: amqp-layout -list")
		fmt.Fprintln(os.Stderr, "       amqp-layout -struct <name> [-set field=value ...] [-framed]")
		fmt.Fprintln(os.Stderr, "       amqp-layout -struct <name> -decode <hex>")
		fmt.Fprintln(os.Stderr, "       amqp-layout -framed -decode <hex>")
		fmt.Fprintln(os.Stderr, "       amqp-layout -i  (interactive mode)")
		os.Exit(1)
	}

	var err error
	switch {
	case *list:
		listStructures(os.Stdout)
	case *decodeHex != "":
		err = runDecode(os.Stdout, *structName, *decodeHex, *framed)
	default:
		err = runEncode(os.Stdout, *structName, sets, *framed)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listStructures(w io.Writer) {
	fmt.Fprintf(w, "Structures:\n")
	for _, s := range framing.Registry().All() {
		if !s.IsMethod() {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
	fmt.Fprintf(w, "\nMethods:\n")
	for _, s := range framing.Registry().All() {
		if s.IsMethod() {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
}

// build creates an instance of the named structure with the given assignments.
func build(name string, sets []string) (*codec.Struct, error) {
	desc, err := framing.Lookup(name)
	if err != nil {
		return nil, err
	}
	s := codec.New(desc)
	for _, kv := range sets {
		path, text, _ := strings.Cut(kv, "=")
		if err := assign(s, path, text); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// encode returns the wire bytes of s, framed when requested and applicable.
func encode(s *codec.Struct, framed bool) ([]byte, error) {
	desc := s.Descriptor()
	w := buffer.NewWriter(0)
	var err error
	switch {
	case framed && desc.IsMethod():
		err = framing.EncodeMethod(w, s)
	case framed && desc.HasTypeCode():
		err = framing.EncodeStruct32(w, s)
	default:
		err = s.Encode(w)
	}
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func runEncode(w io.Writer, name string, sets []string, framed bool) error {
	s, err := build(name, sets)
	if err != nil {
		return err
	}
	data, err := encode(s, framed)
	if err != nil {
		return err
	}
	describe(w, s, data)
	return nil
}

func runDecode(w io.Writer, name, text string, framed bool) error {
	data, err := parseHex(text)
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}

	var s *codec.Struct
	switch {
	case framed:
		r := buffer.NewReader(data)
		s, err = framing.DecodeMethod(r)
		if err != nil {
			s, err = framing.DecodeStruct32(r)
		}
		if err == nil && r.Remaining() != 0 {
			err = fmt.Errorf("%d trailing bytes", r.Remaining())
		}
		if err == nil && name != "" && s.Descriptor().QualifiedName() != name {
			err = fmt.Errorf("input holds %s, not %s", s.Descriptor().QualifiedName(), name)
		}
	default:
		desc, lerr := framing.Lookup(name)
		if lerr != nil {
			return lerr
		}
		s, err = codec.Unmarshal(desc, data)
	}
	if err != nil {
		return err
	}
	describe(w, s, data)
	return nil
}

func describe(w io.Writer, s *codec.Struct, data []byte) {
	desc := s.Descriptor()
	fmt.Fprintf(w, "Structure: %s\n", desc)
	fmt.Fprintf(w, "Size: %d bytes (%d on the wire)\n", s.Size(), len(data))
	if desc.Packed() {
		fmt.Fprintf(w, "Flags: %0*x\n", desc.PackWidth()*2, codec.Flags(s))
	}
	fmt.Fprintf(w, "Value: %s\n\n", s)
	fmt.Fprint(w, hex.Dump(data))
}
