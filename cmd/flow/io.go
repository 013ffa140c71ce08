package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/flowgraph/graph"
	"github.com/signadot/flowgraph/mutate"
	"github.com/signadot/flowgraph/ot"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

// readArg returns the document named by arg: "-" reads the command
// input, "@path" reads a file and anything else is the document itself.
func readArg(cc *cli.Context, arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(cc.In)
	case strings.HasPrefix(arg, "@"):
		return os.ReadFile(arg[1:])
	default:
		return []byte(arg), nil
	}
}

// readFile is like readArg for arguments naming a file by default.
func readFile(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" || strings.HasPrefix(arg, "@") {
		return readArg(cc, arg)
	}
	return os.ReadFile(arg)
}

// toJSON converts a yaml document to json.  Json input is returned as is
// so that object key order survives.
func toJSON(d []byte) ([]byte, error) {
	d = bytes.TrimSpace(d)
	if len(d) == 0 {
		return nil, nil
	}
	if d[0] == '{' || d[0] == '[' {
		if json.Valid(d) {
			return d, nil
		}
	}
	return yaml.YAMLToJSON(d)
}

func getGraph(cc *cli.Context, arg string) (*graph.Graph, error) {
	d, err := readFile(cc, arg)
	if err != nil {
		return nil, err
	}
	j, err := toJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding graph %s: %w", arg, err)
	}
	if j == nil {
		return nil, nil
	}
	g, err := graph.Parse(j)
	if err != nil {
		return nil, fmt.Errorf("error decoding graph %s: %w", arg, err)
	}
	return g, nil
}

func getOps(cc *cli.Context, arg string) ([]ot.Op, error) {
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, err
	}
	j, err := toJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding ops: %w", err)
	}
	if j == nil {
		return nil, nil
	}
	return ot.Parse(j)
}

// getSpecs decodes a list of node specs, or a single one.
func getSpecs(cc *cli.Context, arg string) ([]mutate.NodeSpec, error) {
	j, err := readJSON(cc, arg)
	if err != nil {
		return nil, err
	}
	var specs []mutate.NodeSpec
	if err := json.Unmarshal(j, &specs); err == nil {
		return specs, nil
	}
	var spec mutate.NodeSpec
	if err := json.Unmarshal(j, &spec); err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", arg, err)
	}
	return []mutate.NodeSpec{spec}, nil
}

func decodeArg(cc *cli.Context, arg string, v any) error {
	j, err := readJSON(cc, arg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(j, v); err != nil {
		return fmt.Errorf("error decoding %q: %w", arg, err)
	}
	return nil
}

func readJSON(cc *cli.Context, arg string) ([]byte, error) {
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, err
	}
	j, err := toJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", arg, err)
	}
	if j == nil {
		return nil, fmt.Errorf("%w: empty document %q", cli.ErrUsage, arg)
	}
	return j, nil
}

// marshal encodes v as indented json, or yaml with -y.
func (cfg *MainConfig) marshal(v any) ([]byte, error) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	if !cfg.Y {
		return d, nil
	}
	return yaml.JSONToYAML(d)
}

func (cfg *MainConfig) writeDoc(w io.Writer, v any) error {
	d, err := cfg.marshal(v)
	if err != nil {
		return err
	}
	if len(d) == 0 || d[len(d)-1] != '\n' {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}
