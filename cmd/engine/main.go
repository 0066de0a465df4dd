package main

import (
	"flag"
	"io"
	"os"

	"github.com/gviras/dao-vote-engine/engineio"
)

func main() {
	envName := flag.String("env", "", "environment variable carrying the DAO master secret (default: DAO_MASTER_SECRET)")
	inPath := flag.String("in", "-", "input file, or - for stdin")
	outPath := flag.String("out", "-", "output file, or - for stdout")
	flag.Parse()

	in, closeIn, err := openInput(*inPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer closeOut()

	cfg := engineio.Config{
		EnvName: *envName,
		Getenv:  os.LookupEnv,
		In:      in,
		Out:     out,
	}

	os.Exit(engineio.Run(cfg))
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
