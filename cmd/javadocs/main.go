package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/MrSnakeDoc/javadocs/internal/version"
)

func main() {
	parser := newParser(os.Stdout)
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(&Global{Out: os.Stdout}))
}

func newParser(out io.Writer, options ...kong.Option) *kong.Kong {
	var cli CLI
	options = append([]kong.Option{
		kong.Name("javadocs"),
		kong.Description("Java documentation browser."),
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
		kong.Vars{"version": version.String()},
	}, options...)
	return kong.Must(&cli, options...)
}
