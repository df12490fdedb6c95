package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"retarget/internal/ast"
	"retarget/internal/diag"
	"retarget/internal/polyfill"
)

var (
	polyfillsTable   string
	polyfillsTarget  string
	polyfillsRuntime string
	polyfillsOutput  string
)

var polyfillsCmd = &cobra.Command{
	Use:   "polyfills [tree.sx]",
	Short: "Inject required polyfill libraries and prune satisfied ones",
	Long: `Scan a program tree for uses of cataloged builtin symbols, inject the
backing runtime libraries the output target is missing, and prune injected
initializations the target already satisfies natively.

The runtime directory holds one tree fixture per library, named after the
library path (e.g. es6/array/flat -> <runtime>/es6/array/flat.sx).

Examples:
  retarget polyfills app.sx -t polyfills.txt --target es5 --runtime runtime/
  retarget polyfills app.sx -t polyfills.txt --target es2019 --runtime runtime/ -o out.sx`,
	Args: cobra.ExactArgs(1),
	RunE: runPolyfills,
}

func init() {
	polyfillsCmd.Flags().StringVarP(&polyfillsTable, "table", "t", "", "Path to the polyfill catalog")
	polyfillsCmd.Flags().StringVar(&polyfillsTarget, "target", "es5", "Output feature set (es3, es5, es2015..es2021, es_next)")
	polyfillsCmd.Flags().StringVar(&polyfillsRuntime, "runtime", "", "Directory of per-library runtime tree fixtures")
	polyfillsCmd.Flags().StringVarP(&polyfillsOutput, "output", "o", "", "Path for the rewritten tree (default stdout)")
	_ = viper.BindPFlag("table", polyfillsCmd.Flags().Lookup("table"))
	_ = viper.BindPFlag("target", polyfillsCmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("runtime", polyfillsCmd.Flags().Lookup("runtime"))
}

func runPolyfills(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}
	root, err := ast.Parse(string(src))
	if err != nil {
		return err
	}
	if root.Kind != ast.Script {
		return fmt.Errorf("top-level node must be a script")
	}

	tablePath := viper.GetString("table")
	if tablePath == "" {
		return fmt.Errorf("no polyfill catalog specified (use -t or the RETARGET_TABLE env var)")
	}
	table, err := polyfill.LoadTable(tablePath)
	if err != nil {
		return err
	}
	target, err := polyfill.FeatureSetOf(viper.GetString("target"))
	if err != nil {
		return err
	}

	injector := polyfill.NewScriptInjector(root)
	if dir := viper.GetString("runtime"); dir != "" {
		if err := registerRuntimeLibraries(injector, table, dir); err != nil {
			return err
		}
	}

	collector := &diag.Collector{}
	gate := polyfill.NewGate(target, collector, injector)
	polyfill.NewUsageFinder(table).TraverseExcludingGuarded(root, gate.Evaluate)
	gate.Finalize()
	logDiagnostics(collector)

	return writeTree(polyfillsOutput, ast.Print(root))
}

// registerRuntimeLibraries loads each library's statement templates from
// the runtime directory. A missing fixture is tolerated: the library then
// injects nothing, which matches an environment where the runtime is
// provided out of band.
func registerRuntimeLibraries(injector *polyfill.ScriptInjector, table *polyfill.Table, dir string) error {
	for _, library := range table.Libraries() {
		path := filepath.Join(dir, filepath.FromSlash(library)+".sx")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("no runtime fixture for library", zap.String("library", library))
				continue
			}
			return err
		}
		tree, err := ast.Parse(string(data))
		if err != nil {
			return fmt.Errorf("runtime library %s: %w", library, err)
		}
		if tree.Kind != ast.Script {
			return fmt.Errorf("runtime library %s: top-level node must be a script", library)
		}
		var stmts []*ast.Node
		for tree.FirstChild() != nil {
			stmts = append(stmts, tree.FirstChild().Detach())
		}
		injector.Register(library, stmts...)
	}
	return nil
}
