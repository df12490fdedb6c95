package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"retarget/internal/ast"
	"retarget/internal/diag"
	"retarget/internal/message"
	"retarget/internal/rewriter"
)

var (
	rewriteBundle     string
	rewriteStrict     bool
	rewriteOutput     string
	rewriteAlternates []string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [tree.sx]",
	Short: "Replace message definitions with bundle translations",
	Long: `Replace localizable-message definitions in a program tree with translated
value subtrees from a TOML message bundle.

Examples:
  retarget rewrite app.sx -b messages.fr.toml -o app.fr.sx
  retarget rewrite app.sx -b messages.fr.toml --strict
  retarget rewrite app.sx -b messages.fr.toml --alternate MSG_NEW=MSG_OLD`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteBundle, "bundle", "b", "", "Path to the TOML message bundle")
	rewriteCmd.Flags().BoolVar(&rewriteStrict, "strict", false, "Treat a missing translation as an error instead of keeping the source message")
	rewriteCmd.Flags().StringVarP(&rewriteOutput, "output", "o", "", "Path for the rewritten tree (default stdout)")
	rewriteCmd.Flags().StringArrayVar(&rewriteAlternates, "alternate", nil, "Alternate message id mapping, repeatable: PRIMARY_ID=ALTERNATE_ID")
	_ = viper.BindPFlag("bundle", rewriteCmd.Flags().Lookup("bundle"))
	_ = viper.BindPFlag("strict", rewriteCmd.Flags().Lookup("strict"))
}

func runRewrite(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}
	root, err := ast.Parse(string(src))
	if err != nil {
		return err
	}

	bundlePath := viper.GetString("bundle")
	if bundlePath == "" {
		return fmt.Errorf("no message bundle specified (use -b or the RETARGET_BUNDLE env var)")
	}
	bundle, err := message.LoadBundle(bundlePath)
	if err != nil {
		return err
	}
	logger.Info("bundle loaded",
		zap.String("path", bundlePath),
		zap.Stringer("locale", bundle.Locale),
		zap.Int("messages", bundle.Len()))

	alternates, err := parseAlternates(rewriteAlternates)
	if err != nil {
		return err
	}

	collector := &diag.Collector{}
	rw := rewriter.New(bundle, viper.GetBool("strict"), collector)
	rewriter.NewLocator(rw, collector, alternates).Process(root)
	logDiagnostics(collector)

	if err := writeTree(rewriteOutput, ast.Print(root)); err != nil {
		return err
	}
	if n := collector.ErrorCount(); n > 0 {
		return fmt.Errorf("%d message(s) could not be replaced", n)
	}
	return nil
}

func parseAlternates(pairs []string) (map[string]string, error) {
	alternates := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		primary, alternate, ok := strings.Cut(pair, "=")
		if !ok || primary == "" || alternate == "" {
			return nil, fmt.Errorf("bad --alternate %q: want PRIMARY_ID=ALTERNATE_ID", pair)
		}
		alternates[primary] = alternate
	}
	return alternates, nil
}
