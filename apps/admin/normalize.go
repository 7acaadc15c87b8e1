package main

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core/normalize"
)

// normalize prints the normalized form of a raw payload. Input that is not JSON is normalized as a string.
func (cli *commandLine) normalize(kind, path string) error {
	var in io.Reader = cli.stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "opening payload")
		}
		defer f.Close()
		in = f
	}
	raw, err := ioutil.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "reading payload")
	}

	var payload interface{}
	if decoded, err := normalize.Decode(raw); err == nil {
		payload = decoded
	} else {
		payload = string(raw)
	}
	out, ok := normalize.ByKind(kind, payload)
	if !ok {
		return errors.Errorf("unknown kind %q, want one of %v", kind, normalize.Kinds())
	}

	enc := json.NewEncoder(cli.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
