package tmpl

import (
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TargetFileName returns the name of the Go file generated for an input file, like super_secret_txt.go for super-secret.txt.
func TargetFileName(input string) string {
	_, fname := filepath.Split(input)
	return identCleansePattern.ReplaceAllString(fname, "_") + ".go"
}

// GenerateFiles generates one Go file in dir for each input file, embedding the file's contents as a literal.
// Files are generated concurrently, and the first error encountered is returned.
// Inputs that would be generated to the same file return ErrDuplicateLiteral before anything is written.
func GenerateFiles(dir string, inputs []string, opts ...ParamOpt) ([]string, error) {
	var (
		g       errgroup.Group
		outputs = make([]string, len(inputs))
		seen    = map[string]string{}
	)
	for i, input := range inputs {
		outputs[i] = filepath.Join(dir, TargetFileName(input))
		if prev, ok := seen[outputs[i]]; ok {
			return nil, fmt.Errorf("%w: '%s' and '%s' would both generate %s", ErrDuplicateLiteral, prev, input, outputs[i])
		}
		seen[outputs[i]] = input
	}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range inputs {
		g.Go(func() error {
			fileOpts := append([]ParamOpt{AddFileLiteral(input)}, opts...)
			return GenerateFile(outputs[i], fileOpts...)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
