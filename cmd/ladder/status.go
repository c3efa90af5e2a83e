package main

import (
	"context"
	"io"

	"github.com/reusee/ladder/plcs"
	"gopkg.in/yaml.v3"
)

func writeStatus(ctx context.Context, w io.Writer, runner *plcs.Runner) error {
	status, err := runner.Status(ctx)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(status); err != nil {
		return err
	}
	return encoder.Close()
}
