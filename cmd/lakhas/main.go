package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/lakhas/pkg/lakhas"
	"github.com/cognicore/lakhas/pkg/lakhas/config"
	"github.com/cognicore/lakhas/pkg/lakhas/docsource"
)

const (
	originalBanner = "************ Original Text ************"
	summaryBanner  = "************ Summary ************"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// flags shared by every subcommand
type options struct {
	in         string
	phrases    int
	indicators string
	lexicon    string
	stoplist   string
	lemmatizer string
	envFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "lakhas",
		Short:         "Extractive single-document summarizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.in, "in", "", "input document (.txt, .html, .pdf); stdin when empty or -")
	root.PersistentFlags().IntVarP(&opts.phrases, "phrases", "n", lakhas.DefaultNumPhrases, "number of sentences to extract")
	root.PersistentFlags().StringVar(&opts.indicators, "indicators", "", "indicator YAML file (default: built-in)")
	root.PersistentFlags().StringVar(&opts.lexicon, "lexicon", "", "lexicon YAML file (default: built-in)")
	root.PersistentFlags().StringVar(&opts.stoplist, "stoplist", "", "stoplist adjustment YAML file")
	root.PersistentFlags().StringVar(&opts.lemmatizer, "lemmatizer", "", "lemmatizer: noun, porter or snowball")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file of LAKHAS_* settings, read instead of the process environment")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline events to stderr")

	root.AddCommand(summarizeCmd(opts), rankCmd(opts))
	return root
}

func summarizeCmd(opts *options) *cobra.Command {
	var (
		out     string
		noWrite bool
		quiet   bool
	)
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Print and save the top sentences of a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				settings.OutputPath = out
			}

			text, err := readInput(cmd, opts.in)
			if err != nil {
				return err
			}

			s, _, err := buildSummarizer(settings, newLogger(cmd, opts.verbose))
			if err != nil {
				return err
			}

			summary, err := s.SummarizeN(text, settings.NumPhrases)
			if err != nil {
				return fmt.Errorf("summarize: %w", err)
			}

			w := cmd.OutOrStdout()
			if quiet {
				fmt.Fprint(w, summary)
			} else {
				fmt.Fprintln(w, originalBanner)
				fmt.Fprintln(w, text)
				fmt.Fprintln(w)
				fmt.Fprintln(w, summaryBanner)
				fmt.Fprintln(w, summary)
			}

			if noWrite {
				return nil
			}
			if err := os.WriteFile(settings.OutputPath, []byte(summary), 0644); err != nil {
				return fmt.Errorf("write summary: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", config.DefaultOutputPath, "file the summary is written to")
	cmd.Flags().BoolVar(&noWrite, "no-write", false, "do not write the summary file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")
	return cmd
}

func rankCmd(opts *options) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Explain how every sentence of a document was weighted",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings(cmd, opts)
			if err != nil {
				return err
			}

			text, err := readInput(cmd, opts.in)
			if err != nil {
				return err
			}

			s, comp, err := buildSummarizer(settings, newLogger(cmd, opts.verbose))
			if err != nil {
				return err
			}

			ranking, err := s.Rank(text)
			if err != nil {
				return fmt.Errorf("rank: %w", err)
			}

			w := cmd.OutOrStdout()
			if added := comp.Stoplist.Added(); len(added) > 0 {
				fmt.Fprintf(w, "Stopwords added: %s\n", strings.Join(added, ", "))
			}
			if removed := comp.Stoplist.Removed(); len(removed) > 0 {
				fmt.Fprintf(w, "Stopwords removed: %s\n", strings.Join(removed, ", "))
			}
			for pos, idx := range ranking.Order {
				sent := ranking.Sentences[idx]
				b := sent.Breakdown
				fmt.Fprintf(w, "%2d. [sentence %d] total=%.2f freq=%.0f cue=%.2f keyword=%.2f connectivity=%.2f\n",
					pos+1, sent.Index, b.Total, b.Frequency, b.Cue, b.Keyword, b.Connectivity)
				fmt.Fprintf(w, "    %s\n", sent.Raw)
			}

			card, err := s.Card(title, text, settings.NumPhrases)
			if err != nil {
				return fmt.Errorf("build card: %w", err)
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Card %s: %s\n", card.ID, card.Title)
			for _, bullet := range card.Bullets {
				fmt.Fprintf(w, "  - %s\n", bullet)
			}
			if len(card.Explain.MatchedCues) > 0 {
				cues := make([]string, len(card.Explain.MatchedCues))
				for i, cue := range card.Explain.MatchedCues {
					cues[i] = cue
					if c, ok := comp.Indicators.CategoryOf(cue); ok {
						cues[i] = fmt.Sprintf("%s (%s)", cue, c)
					}
				}
				fmt.Fprintf(w, "Cue phrases: %s\n", strings.Join(cues, ", "))
			}
			if len(card.Explain.MatchedKeywords) > 0 {
				fmt.Fprintf(w, "Keywords: %s\n", strings.Join(card.Explain.MatchedKeywords, ", "))
			}
			terms := make([]string, len(card.Explain.TopTerms))
			for i, e := range card.Explain.TopTerms {
				terms[i] = fmt.Sprintf("%s(%d)", e.Token, e.Count)
			}
			if len(terms) > 0 {
				fmt.Fprintf(w, "Top terms: %s\n", strings.Join(terms, " "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "Summary", "card title")
	return cmd
}

// resolveSettings reads LAKHAS_* settings, from --env-file when given, and
// applies explicitly set flags on top
func resolveSettings(cmd *cobra.Command, opts *options) (config.Settings, error) {
	load := config.FromEnv
	if opts.envFile != "" {
		load = func() (config.Settings, error) { return config.FromEnvFile(opts.envFile) }
	}
	settings, err := load()
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("phrases") {
		if opts.phrases < 0 {
			return config.Settings{}, fmt.Errorf("--phrases must not be negative, got %d", opts.phrases)
		}
		settings.NumPhrases = opts.phrases
	}
	if flags.Changed("indicators") {
		settings.IndicatorsPath = opts.indicators
	}
	if flags.Changed("lexicon") {
		settings.LexiconPath = opts.lexicon
	}
	if flags.Changed("stoplist") {
		settings.StoplistPath = opts.stoplist
	}
	if flags.Changed("lemmatizer") {
		settings.Lemmatizer = opts.lemmatizer
	}
	return settings, nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		text, err := docsource.FromReader(cmd.InOrStdin(), docsource.Text)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return text, nil
	}

	text, err := docsource.FromFilePath(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return text, nil
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func buildSummarizer(settings config.Settings, logger *slog.Logger) (*lakhas.Summarizer, *config.Components, error) {
	comp, err := settings.Loader().Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	s, err := lakhas.New(lakhas.Options{
		Service:    comp.Service,
		Indicators: comp.Indicators,
		Lexicon:    comp.Lexicon,
		Weights:    settings.Weights,
		NumPhrases: settings.NumPhrases,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return s, comp, nil
}
