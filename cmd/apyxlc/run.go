package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/spf13/cobra"

	"apyxlgo/build"
	"apyxlgo/gen/dbg"
	"apyxlgo/generator"
	"apyxlgo/log"
	"apyxlgo/parser"
	"apyxlgo/parser/jsonidl"
	"apyxlgo/view"
)

var parsers = map[string]parser.Parser{
	"jsonidl": jsonidl.New(),
}

var generators = map[string]generator.Generator{
	"dbg": dbg.New(),
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger := log.New("cmd", "apyxlc")

	p, ok := parsers[flagParser]
	if !ok {
		return fmt.Errorf("apyxlc: unknown parser %q", flagParser)
	}
	g, ok := generators[flagGenerator]
	if !ok {
		return fmt.Errorf("apyxlc: unknown generator %q", flagGenerator)
	}

	pcfg, err := loadParserConfig(flagParserConfig)
	if err != nil {
		return err
	}

	chunks, err := doublestar.Glob(flagInput)
	if err != nil {
		return fmt.Errorf("apyxlc: bad --input glob: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("apyxlc: --input %q matched no files", flagInput)
	}

	b := build.New()
	var parseErrs []error
	for _, chunkPath := range chunks {
		src, err := os.ReadFile(chunkPath)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		if err := p.Parse(b, chunkPath, src, pcfg); err != nil {
			parseErrs = append(parseErrs, err)
		}
	}
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("apyxlc: %d chunk(s) failed to parse", len(parseErrs))
	}

	m, verrs := b.Build(ctx, build.Config{
		PreValidationPrint: flagPreValidation,
		UserTypes:          pcfg.BuilderUserTypes(),
	})
	if len(verrs) > 0 {
		for _, e := range verrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("apyxlc: %d validation error(s)", len(verrs))
	}

	sink := newCLISink(flagOutputRoot, flagOutputs, flagStdouts)
	if err := g.Generate(view.New(m), sink); err != nil {
		return fmt.Errorf("apyxlc: generator %q: %w", flagGenerator, err)
	}

	logger.Debug("generation complete", "chunks", len(chunks))
	return nil
}

func loadParserConfig(path string) (parser.Config, error) {
	if path == "" {
		return parser.Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Config{}, fmt.Errorf("apyxlc: reading parser config: %w", err)
	}
	var cfg parser.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return parser.Config{}, fmt.Errorf("apyxlc: parsing parser config: %w", err)
	}
	return cfg, nil
}

// cliSink routes generator chunks either to stdout (when named by
// --stdout) or to a file under --output-root, honoring --output name=subdir
// remaps for the subdirectory a given chunk name lands in.
type cliSink struct {
	outputRoot string
	subdirs    map[string]string
	stdouts    map[string]bool
}

func newCLISink(outputRoot string, outputs, stdouts []string) *cliSink {
	s := &cliSink{outputRoot: outputRoot, subdirs: map[string]string{}, stdouts: map[string]bool{}}
	for _, o := range outputs {
		name, subdir, ok := strings.Cut(o, "=")
		if ok {
			s.subdirs[name] = subdir
		}
	}
	for _, name := range stdouts {
		s.stdouts[name] = true
	}
	return s
}

func (s *cliSink) WriteChunk(path string) (generator.Writer, error) {
	name := filepath.Base(path)
	if s.stdouts[name] || s.stdouts[path] {
		return stdoutWriter{}, nil
	}
	dir := s.outputRoot
	if subdir, ok := s.subdirs[name]; ok {
		dir = filepath.Join(dir, subdir)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	return fileWriter{f}, nil
}

type fileWriter struct{ f *os.File }

func (w fileWriter) WriteString(s string) (int, error) { return w.f.WriteString(s) }
func (w fileWriter) Close() error                       { return w.f.Close() }

type stdoutWriter struct{}

func (stdoutWriter) WriteString(s string) (int, error) { return fmt.Print(s) }
func (stdoutWriter) Close() error                       { return nil }
