package tmpl

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/saylorsolutions/teastr/pkg/teastr"
)

const (
	blocksPerLine = 4
)

var (
	//go:embed teastr_embed.go.tmpl
	tmplText     string
	tmplTemplate = template.Must(template.New("template").Parse(tmplText))

	ErrDuplicateLiteral = errors.New("duplicate literal name")
)

// Literal is a single obfuscated string as it will be rendered in the generated file.
type Literal struct {
	Ident        string `validate:"required"`
	FuncName     string
	IntoName     string
	Length       int
	BlockCount   int
	KeyString    string
	BlocksString string

	value string
}

type Params struct {
	Package  string     `validate:"required,goident"`
	Exposed  bool
	Literals []*Literal `validate:"min=1,dive"`

	seed    teastr.Seed
	seedSet bool
}

// ParamOpt operates on Params in a standard and predictable way, and is used in Generate and GenerateFile.
// If any ParamOpt returns an error, then file generation ceases and the error is returned.
type ParamOpt = func(params *Params) error

// ExposeFunctions indicates that generated functions should be exposed.
func ExposeFunctions(val ...bool) ParamOpt {
	return func(params *Params) error {
		if len(val) > 0 {
			params.Exposed = val[0]
			return nil
		}
		params.Exposed = true
		return nil
	}
}

// PackageName specifies the package name of the generated file.
// This is useful for cases where the expected package name doesn't match the name of the containing directory.
func PackageName(name string) ParamOpt {
	name = strings.TrimSpace(name)
	return func(params *Params) error {
		if len(name) == 0 {
			return nil
		}
		params.Package = name
		return nil
	}
}

// UseSeed sets the seed used to derive the key, instead of using the build time.
func UseSeed(seed teastr.Seed) ParamOpt {
	return func(params *Params) error {
		params.seed = seed
		params.seedSet = true
		return nil
	}
}

// UsePassphrase derives the seed from a passphrase, which results in the same key for every build.
func UsePassphrase(pass string) ParamOpt {
	return func(params *Params) error {
		seed, err := teastr.SeedFromPassphrase([]byte(pass))
		if err != nil {
			return err
		}
		params.seed = seed
		params.seedSet = true
		return nil
	}
}

// AddLiteral adds a literal value with the given name.
func AddLiteral(name, value string) ParamOpt {
	return func(params *Params) error {
		ident := identCleansePattern.ReplaceAllString(unicap(strings.TrimSpace(name)), "_")
		for _, lit := range params.Literals {
			if lit.Ident == ident {
				return fmt.Errorf("%w: '%s'", ErrDuplicateLiteral, name)
			}
		}
		params.Literals = append(params.Literals, &Literal{
			Ident: ident,
			value: value,
		})
		return nil
	}
}

// AddFileLiteral adds the contents of a file as a literal, named after the file.
func AddFileLiteral(file string) ParamOpt {
	return func(params *Params) error {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		_, fname := filepath.Split(file)
		return AddLiteral(fname, string(data))(params)
	}
}

// GenerateFile will generate a Go file at output embedding all literals given as ParamOpt.
// The package name defaults to the name of the directory containing output.
func GenerateFile(output string, opts ...ParamOpt) error {
	var buf bytes.Buffer
	if err := generate(&buf, filepath.Dir(output), opts...); err != nil {
		return err
	}
	return os.WriteFile(output, buf.Bytes(), 0644)
}

// Generate will write a formatted Go file embedding all literals given as ParamOpt to w.
// The package name defaults to the name of the current working directory.
func Generate(w io.Writer, opts ...ParamOpt) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return generate(w, cwd, opts...)
}

func generate(w io.Writer, dir string, opts ...ParamOpt) error {
	params := new(Params)
	if err := populateContextData(params, dir); err != nil {
		return err
	}
	for _, opt := range opts {
		if err := opt(params); err != nil {
			return err
		}
	}
	if !params.seedSet {
		buildTime, err := teastr.BuildTime()
		if err != nil {
			return err
		}
		params.seed = teastr.DefaultSeed(buildTime)
	}
	if err := validateParams(params); err != nil {
		return err
	}
	for _, lit := range params.Literals {
		obfuscateLiteral(params, lit)
	}

	var buf bytes.Buffer
	if err := tmplTemplate.Execute(&buf, params); err != nil {
		return err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to format generated source: %w", err)
	}
	_, err = w.Write(src)
	return err
}

func populateContextData(params *Params, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	params.Package = filepath.Base(abs)
	return nil
}

var (
	identCleansePattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	validate            = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

func validateParams(params *Params) error {
	if err := validate.Struct(params); err != nil {
		return fmt.Errorf("invalid generation parameters: %w", err)
	}
	return nil
}

func obfuscateLiteral(params *Params, lit *Literal) {
	c := teastr.Make(lit.value, params.seed)
	key := c.Key()
	lit.Length = c.Len()
	lit.BlockCount = c.BlockCount()
	lit.KeyString = fmt.Sprintf("0x%08x, 0x%08x, 0x%08x, 0x%08x", key[0], key[1], key[2], key[3])

	var sb strings.Builder
	for i, block := range c.Blocks() {
		if i > 0 && i%blocksPerLine == 0 {
			sb.WriteString("\n")
		}
		_, _ = fmt.Fprintf(&sb, "0x%016x, ", block)
	}
	lit.BlocksString = sb.String()

	if params.Exposed {
		lit.FuncName = "Reveal" + lit.Ident
		lit.IntoName = "Reveal" + lit.Ident + "Into"
	} else {
		lit.FuncName = "reveal" + lit.Ident
		lit.IntoName = "reveal" + lit.Ident + "Into"
	}
}

func unicap(s string) string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return ""
	case 1:
		return string(unicode.ToUpper(runes[0]))
	default:
		return string(append([]rune{unicode.ToUpper(runes[0])}, runes[1:]...))
	}
}
