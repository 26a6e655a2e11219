package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/saylorsolutions/teastr/cmd/internal"
	"github.com/saylorsolutions/teastr/cmd/teagen/internal/tmpl"
	"github.com/saylorsolutions/teastr/pkg/teastr"
	flag "github.com/spf13/pflag"
)

var (
	version = "dev"
)

func main() {
	var (
		helpFlag       bool
		versionFlag    bool
		exposedFlag    bool
		quietFlag      bool
		packageFlag    string
		outputFlag     string
		seedFlag       string
		passphraseFlag string
		manifestFlag   string
		literalFlags   []string
	)
	flags := flag.NewFlagSet("teagen", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version of teagen.")
	flags.BoolVarP(&exposedFlag, "exposed", "E", false, "Make the reveal functions exposed from the file. It's recommended to only expose from within an internal package.")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Don't print the names of generated files.")
	flags.StringVarP(&packageFlag, "package", "p", "", "Package name of the generated file(s). Defaults to the name of the output directory.")
	flags.StringVarP(&outputFlag, "output", "o", "", fmt.Sprintf("Output file for --literal values. Defaults to %s, FILE arguments are always written to the current directory.", tmpl.DefaultOutput))
	flags.StringVarP(&seedFlag, "seed", "s", "", "Up to 4 comma separated 32-bit seed values (decimal or 0x hex) used to derive the key.")
	flags.StringVar(&passphraseFlag, "passphrase", "", "Derive the key seed from a passphrase, for reproducible builds.")
	flags.StringVarP(&manifestFlag, "manifest", "m", "", "YAML manifest describing literals to generate into a single file.")
	flags.StringArrayVarP(&literalFlags, "literal", "l", nil, "A literal to embed as NAME=VALUE. May be specified more than once.")
	flags.Usage = func() {
		fmt.Printf(`
teagen generates code to embed TEA obfuscated string literals in a *.go file. This pairs well with go:generate comments.
For each FILE, a Go file will be created in the current directory named after the input file, replacing characters that match the regex pattern [^a-zA-Z0-9_] with "_".
For example, given a file called super-secret.txt, a Go file called super_secret_txt.go will be created, containing a function called revealSuper_secret_txt.
See the -E flag below to make it an exposed function, and make sure you review the SECURITY notes below.

USAGE:  teagen [FLAGS] [FILE...]
        teagen [FLAGS] -l NAME=VALUE [-l NAME=VALUE...]
        teagen [FLAGS] -m teagen.yaml

ARGS:
    FILE is an input file to be embedded.

FLAGS:
%s
KEYS:
    By default the key is derived from the build clock, like a C++ __TIME__/__DATE__ seed, so each build tends to embed a different key.
Set %s to use a fixed build time, or use --seed or --passphrase to get the same output for every build.
Seed positions left out of --seed keep their build clock values. A --seed or --passphrase flag takes precedence over the seed in a manifest.

SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
The key is stored right next to the obfuscated data, so this only hides literals from passive binary analysis, like running strings on a binary.
`, flags.FlagUsages(), teastr.SourceDateEpochEnv)
	}
	if len(os.Args) == 1 {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}
	if versionFlag {
		fmt.Println("teagen", version)
		return
	}
	echo := internal.Quiet(quietFlag)

	// All files generated by this invocation share the same default seed.
	buildTime, err := teastr.BuildTime()
	if err != nil {
		internal.Fatal("Failed to determine build time: %v", err)
	}
	defaultSeed := teastr.DefaultSeed(buildTime)

	var seedOpt tmpl.ParamOpt
	switch {
	case len(seedFlag) > 0:
		seed, err := tmpl.ParseSeed(seedFlag, defaultSeed)
		if err != nil {
			internal.Fatal("Failed to parse seed: %v", err)
		}
		seedOpt = tmpl.UseSeed(seed)
	case len(passphraseFlag) > 0:
		seedOpt = tmpl.UsePassphrase(passphraseFlag)
	}
	opts := []tmpl.ParamOpt{
		tmpl.PackageName(packageFlag),
		tmpl.ExposeFunctions(exposedFlag),
		tmpl.UseSeed(defaultSeed),
	}
	if seedOpt != nil {
		opts = append(opts, seedOpt)
	}

	if len(manifestFlag) > 0 {
		generateManifest(manifestFlag, opts, seedOpt, defaultSeed, echo)
	}
	if len(literalFlags) > 0 {
		generateLiterals(literalFlags, outputFlag, opts, echo)
	}
	if flags.NArg() > 0 {
		outputs, err := tmpl.GenerateFiles(".", flags.Args(), opts...)
		if err != nil {
			internal.Fatal("Failed to generate file: %v", err)
		}
		for _, output := range outputs {
			echo("Generated %s", output)
		}
	}
	if len(manifestFlag) == 0 && len(literalFlags) == 0 && flags.NArg() == 0 {
		internal.Fatal("Missing required FILE argument, --literal, or --manifest")
	}
}

func generateManifest(file string, opts []tmpl.ParamOpt, seedOpt tmpl.ParamOpt, defaultSeed teastr.Seed, echo func(string, ...any)) {
	m, err := tmpl.LoadManifest(file)
	if err != nil {
		internal.Fatal("Failed to load manifest: %v", err)
	}
	manifestOpts, err := m.Options(defaultSeed)
	if err != nil {
		internal.Fatal("Failed to load manifest: %v", err)
	}
	output := m.OutputPath()
	if err := tmpl.GenerateFile(output, manifestOptions(opts, manifestOpts, seedOpt)...); err != nil {
		internal.Fatal("Failed to generate file: %v", err)
	}
	echo("Generated %s", output)
}

// manifestOptions applies the manifest settings over opts.
// A seed or passphrase given on the command line is applied last, so it takes precedence over the manifest.
func manifestOptions(opts, manifestOpts []tmpl.ParamOpt, seedOpt tmpl.ParamOpt) []tmpl.ParamOpt {
	all := append(append([]tmpl.ParamOpt{}, opts...), manifestOpts...)
	if seedOpt != nil {
		all = append(all, seedOpt)
	}
	return all
}

func generateLiterals(literals []string, output string, opts []tmpl.ParamOpt, echo func(string, ...any)) {
	if len(output) == 0 {
		output = tmpl.DefaultOutput
	}
	for _, lit := range literals {
		name, value, ok := strings.Cut(lit, "=")
		if !ok {
			internal.Fatal("Invalid literal '%s', expected NAME=VALUE", lit)
		}
		opts = append(opts, tmpl.AddLiteral(name, value))
	}
	if err := tmpl.GenerateFile(filepath.Clean(output), opts...); err != nil {
		internal.Fatal("Failed to generate file: %v", err)
	}
	echo("Generated %s", output)
}
