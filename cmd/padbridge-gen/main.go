// Command padbridge-gen converts an action asset into a vendor input
// manifest and generates the matching controller layout.
//
//	padbridge-gen -actions actions.yaml -type gamepad.Gamepad -vdf gamepad.vdf -out gamepad_gen.go
//
// With -manifest instead of -actions the layout is generated from an
// existing manifest file and no manifest is written.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/padbridge/padbridge-go/pkg/actions"
	"github.com/padbridge/padbridge-go/pkg/manifest"
)

type options struct {
	actions  string
	manifest string
	typeName string
	vdf      string
	out      string
}

func main() {
	var opts options
	flag.StringVar(&opts.actions, "actions", "", "Action asset YAML to convert")
	flag.StringVar(&opts.manifest, "manifest", "", "Existing manifest to generate from (instead of -actions)")
	flag.StringVar(&opts.typeName, "type", "", "Generated layout type as <package>.<Type>")
	flag.StringVar(&opts.vdf, "vdf", "", "Output path for the manifest (requires -actions)")
	flag.StringVar(&opts.out, "out", "", "Output path for the generated Go file")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: padbridge-gen (-actions <yaml> | -manifest <vdf>) [-type <pkg.Type> -out <file>] [-vdf <file>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (o options) validate() error {
	switch {
	case o.actions == "" && o.manifest == "":
		return errors.New("one of -actions or -manifest is required")
	case o.actions != "" && o.manifest != "":
		return errors.New("-actions and -manifest are exclusive")
	case o.manifest != "" && o.vdf != "":
		return errors.New("-vdf requires -actions")
	case (o.typeName == "") != (o.out == ""):
		return errors.New("-type and -out go together")
	case o.vdf == "" && o.out == "":
		return errors.New("nothing to write, give -vdf or -out")
	}
	return nil
}

func run(opts options) error {
	var text string
	if opts.actions != "" {
		asset, err := actions.LoadAsset(opts.actions)
		if err != nil {
			return err
		}
		if text, err = manifest.Convert(asset); err != nil {
			return fmt.Errorf("converting %s: %w", opts.actions, err)
		}
		if opts.vdf != "" {
			if err := os.WriteFile(opts.vdf, []byte(text), 0o644); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}
			fmt.Printf("  generated %s\n", opts.vdf)
		}
	} else {
		data, err := os.ReadFile(opts.manifest)
		if err != nil {
			return fmt.Errorf("reading manifest: %w", err)
		}
		text = string(data)
	}

	if opts.out == "" {
		return nil
	}
	tree, err := manifest.Parse(text)
	if err != nil {
		return err
	}
	code, err := manifest.Generate(tree, opts.typeName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.out, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	fmt.Printf("  generated %s\n", opts.out)
	return nil
}
