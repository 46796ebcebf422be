package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

const (
	appName    = "API Recon"
	appVersion = "1.0.0"
	appDesc    = "Static endpoint and generic type discovery for Spring (Java) codebases"
)

type CLI struct {
	Scan    ScanCmd    `cmd:"" help:"Analyze a source tree and write the reports."`
	Types   TypesCmd   `cmd:"" help:"Parse a Java type expression and show its resolved and API forms."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("api-recon"),
		kong.Description(appDesc),
		kong.UsageOnError(),
	)
	err := run(ctx, cli.Scan.Pause)
	ctx.FatalIfErrorf(err)
}

// run executes the selected command. A panic is reported as an error so the
// pause prompt still shows up.
func run(ctx *kong.Context, pause bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if pause {
			waitForEnter()
		}
	}()
	return ctx.Run()
}

// waitForEnter keeps the console window open when the binary is started by
// double-click.
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                      API RECON v1.0.0                     ║
║        Endpoint & Generic Type Discovery for Spring       ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
