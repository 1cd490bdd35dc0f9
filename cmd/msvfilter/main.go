// Command msvfilter provides a CLI for MSV profile scoring.
//
// Usage:
//
//	msvfilter [command] [options]
//
// Commands:
//
//	score       Score one sequence against a profile
//	batch       Score every record of a FASTA file
//	matrix      Print the filled DP matrix
//	demo        Walk through scoring with synthetic inputs
//	alphabet    Show the amino acid alphabet
//	version     Show version information
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/config"
	"github.com/aria-lang/msvfilter-go/internal/report"
	"github.com/aria-lang/msvfilter-go/internal/synth"
	"github.com/aria-lang/msvfilter-go/pkg/msvfilter"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	command, rest := args[0], args[1:]
	switch command {
	case "score":
		return scoreCmd(rest, cfg, out)
	case "batch":
		return batchCmd(ctx, rest, cfg, out)
	case "matrix":
		return matrixCmd(rest, cfg, out)
	case "demo":
		return demoCmd(rest, out)
	case "alphabet":
		return alphabetCmd(out)
	case "version":
		fmt.Fprintln(out, msvfilter.Info())
		return nil
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(out)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `msvfilter - MSV Profile Pre-filter

Usage:
  msvfilter <command> [options]

Commands:
  score     Score one sequence against a profile
  batch     Score every record of a FASTA file
  matrix    Print the filled DP matrix
  demo      Walk through scoring with synthetic inputs
  alphabet  Show the amino acid alphabet
  version   Show version information
  help      Show this help message

Use "msvfilter <command> -h" for more information about a command.`)
}

// profileFlags selects one of the generated profiles.
type profileFlags struct {
	kind  *string
	m     *int
	score *float64
	hit   *float64
	miss  *float64
}

func addProfileFlags(fs *flag.FlagSet) *profileFlags {
	return &profileFlags{
		kind:  fs.String("profile", "pattern", "Profile kind: constant, pattern, simple or zero"),
		m:     fs.Int("m", 10, "Model length"),
		score: fs.Float64("score", 1, "Score of every residue for a constant profile"),
		hit:   fs.Float64("hit", 2, "Score of the preferred residue for a pattern profile"),
		miss:  fs.Float64("miss", -1, "Score of other residues for a pattern profile"),
	}
}

// check bounds the model and problem size before the profile is built.
func (pf *profileFlags) check(cfg *config.Config, l int) error {
	if err := cfg.CheckModel(*pf.m); err != nil {
		return err
	}
	return cfg.CheckCells(*pf.m, l)
}

func (pf *profileFlags) build() (*msvfilter.Profile, error) {
	switch *pf.kind {
	case "constant":
		return msvfilter.ConstantProfile(*pf.m, *pf.score)
	case "pattern":
		return msvfilter.PatternProfile(*pf.m, *pf.hit, *pf.miss)
	case "simple":
		return synth.SimpleProfile(*pf.m, msvfilter.Amino)
	case "zero":
		return synth.ZeroProfile(*pf.m, msvfilter.Amino)
	default:
		return nil, fmt.Errorf("unknown profile kind %q", *pf.kind)
	}
}

func scoreCmd(args []string, cfg *config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	seq := fs.String("seq", "", "Sequence to score")
	strict := fs.Bool("strict", false, "Reject characters outside the alphabet")
	pf := addProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *seq == "" {
		fs.Usage()
		return fmt.Errorf("-seq is required")
	}

	if *strict {
		if err := msvfilter.Validate(*seq); err != nil {
			return err
		}
	}
	s, err := msvfilter.NewSequence(*seq)
	if err != nil {
		return fmt.Errorf("creating sequence: %w", err)
	}
	if err := pf.check(cfg, s.Len()); err != nil {
		return err
	}
	prof, err := pf.build()
	if err != nil {
		return err
	}

	sc, err := msvfilter.ScoreText(s.Text, prof)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Model: %s (M=%d)\n", prof.Name, prof.M())
	fmt.Fprintf(out, "Sequence length: %d\n", s.Len())
	fmt.Fprintf(out, "MSV score: %s\n", report.FormatScore(sc))
	return nil
}

func batchCmd(ctx context.Context, args []string, cfg *config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	file := fs.String("file", "", "FASTA file to score")
	workers := fs.Int("workers", cfg.Workers, "Concurrent scorers (0 = GOMAXPROCS)")
	asJSON := fs.Bool("json", false, "Write results as JSON")
	strict := fs.Bool("strict", false, "Reject records with characters outside the alphabet")
	pf := addProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}

	seqs, err := msvfilter.ReadFASTA(*file)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	for _, s := range seqs {
		if *strict {
			if err := msvfilter.Validate(s.Text); err != nil {
				return fmt.Errorf("%s: %w", s.Name, err)
			}
		}
		if err := pf.check(cfg, s.Len()); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}

	prof, err := pf.build()
	if err != nil {
		return err
	}

	results, err := msvfilter.ScoreAll(ctx, prof, seqs, *workers)
	if err != nil {
		return err
	}
	summary, err := msvfilter.Summarize(results)
	if err != nil {
		return err
	}
	input, err := msvfilter.SummarizeSequences(seqs)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Results []msvfilter.Result          `json:"results"`
			Summary *msvfilter.ScoreStats       `json:"summary"`
			Input   *msvfilter.SequenceSetStats `json:"input"`
		}{results, summary, input})
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s\t%d\t%s\n", r.Name, r.L, report.FormatScore(r.Score))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, input)
	fmt.Fprintln(out, summary)
	return nil
}

func matrixCmd(args []string, cfg *config.Config, out io.Writer) error {
	fs := flag.NewFlagSet("matrix", flag.ContinueOnError)
	seq := fs.String("seq", "", "Sequence to score")
	pf := addProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *seq == "" {
		fs.Usage()
		return fmt.Errorf("-seq is required")
	}

	s, err := msvfilter.NewSequence(*seq)
	if err != nil {
		return fmt.Errorf("creating sequence: %w", err)
	}
	if err := pf.check(cfg, s.Len()); err != nil {
		return err
	}
	if cells := (*pf.m + 1) * (s.Len() + 1); cells > cfg.MatrixMaxCells {
		return fmt.Errorf("matrix of %d cells exceeds limit of %d", cells, cfg.MatrixMaxCells)
	}
	prof, err := pf.build()
	if err != nil {
		return err
	}

	sc, mx, err := msvfilter.ScoreMatrix(s.Dsq, prof)
	if err != nil {
		return err
	}

	if err := report.Matrix(out, mx, s.Dsq, msvfilter.Amino); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nMSV score: %s\n", report.FormatScore(sc))
	return nil
}

func demoCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	l := fs.Int("l", 15, "Sequence length")
	m := fs.Int("m", 10, "Model length")
	if err := fs.Parse(args); err != nil {
		return err
	}

	abc := msvfilter.Amino

	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, "MSV Filter - Synthetic Inputs")
	fmt.Fprintln(out, "========================================")

	fmt.Fprintln(out, "\n[1] Alphabet")
	fmt.Fprintf(out, "    K: %d\n", abc.K())
	fmt.Fprintf(out, "    Kp: %d\n", abc.Kp())
	fmt.Fprintf(out, "    Symbols: %s\n", abc.Symbols())

	fmt.Fprintln(out, "\n[2] Digital sequence")
	dsq := synth.SimpleSequence(*l, abc)
	if err := report.Sequence(out, dsq, abc); err != nil {
		return err
	}
	fmt.Fprintf(out, "    Sentinels: %d ... %d\n", dsq[0], dsq[len(dsq)-1])

	fmt.Fprintln(out, "\n[3] Profile")
	prof, err := synth.SimpleProfile(*m, abc)
	if err != nil {
		return err
	}
	if err := report.Profile(out, prof, 3, 5); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n[4] DP matrix")
	mx, err := msvfilter.NewMatrix(prof.M(), dsq.Len())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "    %d rows x %d columns\n", mx.L()+1, mx.M()+1)

	fmt.Fprintln(out, "\n[5] Score")
	sc, err := msvfilter.Score(dsq, prof, mx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "    MSV score: %s\n", report.FormatScore(sc))
	return nil
}

func alphabetCmd(out io.Writer) error {
	abc := msvfilter.Amino
	fmt.Fprintf(out, "Symbols: %s\n", abc.Symbols())
	fmt.Fprintf(out, "K=%d Kp=%d gap=%d any=%d\n\n", abc.K(), abc.Kp(), abc.Gap(), abc.Any())

	for x := 0; x < abc.Kp(); x++ {
		r := alphabet.Residue(x)
		var kind string
		switch n := abc.NDegen(x); {
		case abc.IsCanonical(r):
			kind = "canonical"
		case n > 0:
			var matches []byte
			for y := 0; y < abc.K(); y++ {
				if abc.Degeneracy(x, y) {
					matches = append(matches, abc.Symbol(alphabet.Residue(y)))
				}
			}
			kind = fmt.Sprintf("degenerate, matches %d: %s", n, matches)
		default:
			kind = "no degeneracy"
		}
		fmt.Fprintf(out, "%2d  %c  %s\n", x, abc.Symbol(r), kind)
	}
	return nil
}
