package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stoewer/go-strcase"

	"github.com/a-jentleman/go-kindgen/internal/expand"
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type namingStrategyName string

const (
	none           namingStrategyName = "none"
	camelCase      namingStrategyName = "camelCase"
	pascalCase     namingStrategyName = "PascalCase"
	snakeCase      namingStrategyName = "snake_case"
	upperSnakeCase namingStrategyName = "UPPER_SNAKE_CASE"
	kebabCase      namingStrategyName = "kebab-case"
)

var namingStrategies = []namingStrategyName{none, camelCase, pascalCase, snakeCase, upperSnakeCase, kebabCase}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "go-kindgen",
	Short: "Generate kind enums for closed unions of Go types",
	Long: `Generate kind enums for closed unions of Go types.

go-kindgen is designed to be called by go generate on an interface that acts
as a sealed union: the package-level types implementing it are the union's
variants. It generates a companion <Type>Kind enum, a <Type>KindOf tag
function, and per-variant predicates and payload accessors.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.RegisterFlagCompletionFunc("naming-strategy", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var ret []string
			for _, s := range namingStrategies {
				if strings.HasPrefix(string(s), toComplete) {
					ret = append(ret, string(s))
				}
			}

			return ret, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveKeepOrder
		})

		inputFileName, ok := resolveParameterValue(cmd.Flag("input"), "GOFILE")
		if !ok {
			return errors.New("failed to determine input file")
		}

		pkgName, ok := resolveParameterValue(cmd.Flag("pkg"), "GOPACKAGE")
		if !ok {
			return errors.New("failed to determine package name")
		}

		pkg, err := loadPackage(pkgName, inputFileName)
		if err != nil {
			return err
		}

		typeName, _ := resolveParameterValue(cmd.Flag("type"), "")

		var line int
		lineStr, _ := resolveParameterValue(cmd.Flag("line"), "GOLINE")
		if lineStr != "" {
			_, err = fmt.Sscan(lineStr, &line)
			if err != nil {
				return fmt.Errorf("failed to determine source line: %w", err)
			}
		}

		tn, iface, err := findUnionDecl(pkg.Fset, pkg.TypesInfo, typeName, inputFileName, line)
		if err != nil {
			return err
		}

		// update typeName if it was not specified by the caller, but we found it in the source code
		if typeName == "" && tn.Name() != "" {
			typeName = tn.Name()
		}

		receiver, _ := resolveParameterValue(cmd.Flag("receiver"), "")

		reproCmd := os.Args[0]
		if inputFileName != "" {
			reproCmd = fmt.Sprintf("%s --input=%q", reproCmd, inputFileName)
		}

		if pkgName != "" {
			reproCmd = fmt.Sprintf("%s --pkg=%q", reproCmd, pkgName)
		}

		if line > 0 {
			reproCmd = fmt.Sprintf("%s --line=%d", reproCmd, line)
		}

		vs, err := findVariantsOfType(pkg, tn, iface, namingStrategyName(flagNameFunc))
		if err != nil {
			return err
		}
		if len(vs) == 0 {
			return fmt.Errorf("no variant types implementing %q found", tn.Name())
		}

		f, err := expand.Expand(expand.Enum{
			Name:     tn.Name(),
			PkgName:  pkgName,
			PkgPath:  pkg.Types.Path(),
			Variants: vs,
		}, receiver, reproCmd)
		if err != nil {
			return err
		}

		outputFileName, ok := resolveParameterValue(cmd.Flag("output"), "")
		if !ok {
			outputFileName = fmt.Sprintf("%s_kind.go", strcase.SnakeCase(typeName))
		}

		out, cleanup, err := openOutputFile(outputFileName)
		if err != nil {
			return err
		}
		defer cleanup()

		return f.Render(out)
	},
	Example: "go-kindgen --input shapes.go --output shape_kind.go --pkg geometry --type Shape",
}

func init() {
	fs := rootCmd.Flags()
	fs.StringVarP(&flagInput, "input", "i", "", "input file to scan. If not specified, input defaults to the value of $GOFILE, which is set by go generate")
	fs.StringVarP(&flagOutput, "output", "o", "", "output file to create. If not specified, output defaults to the value of <type>_kind.go. As special cases, you can specify <STDOUT> or <STDERR> to output to standard output or standard error")
	fs.StringVarP(&flagPkg, "pkg", "p", "", "package name for the generated file. If not specified, pkg defaults to the value of $GOPACKAGE which is set by go generate")
	fs.StringVarP(&flagType, "type", "t", "", "union interface to generate a kind enum for. If not specified, it attempts to find the type using $GOLINE and $GOFILE")
	fs.StringVarP(&flagReceiver, "receiver", "r", "", "receiver variable name of the generated kind methods. By default, the first letter of the union type is used")
	fs.IntVarP(&flagLine, "line", "l", 0, "Specify the line to search for types from if a type name is not specified. If not specified, line defaults to the value of $GOLINE which is set by go generate.")
	fs.StringVarP(&flagNameFunc, "naming-strategy", "n", "none", "Specify a naming strategy to use. Valid choices are: none, camelCase, PascalCase, snake_case, UPPER_SNAKE_CASE, and kebab-case. The naming strategy will be used when generating display strings for the kind enum. This strategy is ignored for variants that have a name override specified as a line comment.")
	_ = fs.MarkHidden("line")
}

var (
	flagInput    string
	flagOutput   string
	flagPkg      string
	flagType     string
	flagReceiver string
	flagLine     int
	flagNameFunc string
)

// resolveParameterValue returns the parameter value from f if it was specified
// by the user. Otherwise, if env is not empty, it looks up the value from the
// environment variable named env.
func resolveParameterValue(f *pflag.Flag, env string) (string, bool) {
	if f.Changed {
		return f.Value.String(), true
	}

	if env != "" {
		return os.LookupEnv(env)
	}

	return f.DefValue, false
}

// openOutputFile opens/creates the file to write the output to.
// The returned func is the function to use to "close" the file.
func openOutputFile(name string) (*os.File, func(), error) {
	switch name {
	case "<STDOUT>":
		return os.Stdout, func() { _ = os.Stdout.Sync() }, nil
	case "<STDERR>":
		return os.Stderr, func() { _ = os.Stderr.Sync() }, nil
	default:
		ret, err := os.Create(name)
		if err != nil {
			return nil, nil, err
		}
		return ret, func() { _ = ret.Close() }, nil
	}
}
