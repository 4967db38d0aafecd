package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/philipparndt/go3mfexport/internal/buildplan"
	"github.com/philipparndt/go3mfexport/internal/logger"
	"github.com/philipparndt/go3mfexport/internal/models"
	"github.com/philipparndt/go3mfexport/internal/pdfopts"
	"github.com/philipparndt/go3mfexport/internal/preconditions"
	"github.com/philipparndt/go3mfexport/internal/settings"
	"github.com/philipparndt/go3mfexport/internal/threemf"
	"github.com/philipparndt/go3mfexport/internal/ui"
	"github.com/philipparndt/go3mfexport/version"
)

type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn" name:"log-level"`
	LogFile  string `help:"Write a JSON log to this file" name:"log-file" type:"path"`
	Verbose  bool   `help:"Show every build step" short:"v"`

	Export     *ExportCmd     `cmd:"" help:"Export STL files or a YAML project to 3MF"`
	PdfOptions *PdfOptionsCmd `cmd:"" name:"pdf-options" help:"Show or edit the PDF export options"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`
}

// logToFile is set when export messages go to a log file as well
var logToFile bool

// AfterApply configures logging and console output before a command runs.
// With a log file the console only shows the ui output.
func (cli *CLI) AfterApply() error {
	ui.SetVerbose(cli.Verbose)
	logToFile = cli.LogFile != ""

	var err error
	if logToFile {
		err = logger.InitWithFileConfig(cli.LogLevel, logger.DefaultFileConfig(cli.LogFile), false)
	} else {
		err = logger.Init(cli.LogLevel, "")
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

type ExportCmd struct {
	Output       string   `help:"Output file path, - writes to stdout (default: first input with .3mf)" short:"o"`
	Unit         string   `help:"Model unit: micron, millimeter, centimeter, meter, inch or foot"`
	ColorMode    string   `help:"Color mode: none, model or selected-only" name:"color-mode"`
	MaterialType string   `help:"Material type: material or color" name:"material-type"`
	Color        string   `help:"Export color as #rrggbb or #rrggbbaa"`
	Precision    uint32   `help:"Decimal precision of coordinates (default: 6)"`
	NoMetadata   bool     `help:"Do not write metadata" name:"no-metadata"`
	Predictable  bool     `help:"Sort vertices and triangles for reproducible output"`
	Title        string   `help:"Document title"`
	PrintModel   bool     `help:"Print the model XML after exporting" name:"print-model"`
	Open         bool     `help:"Open the result file in the default application after exporting"`
	Files        []string `arg:"" help:"A YAML project file or one or more STL files" type:"path"`
}

// Help adds additional help text with examples
func (c *ExportCmd) Help() string {
	return renderExportHelp()
}

// overrides converts the flags to project export settings
func (c *ExportCmd) overrides() models.ExportSettings {
	s := models.ExportSettings{
		Unit:         c.Unit,
		ColorMode:    c.ColorMode,
		MaterialType: c.MaterialType,
		Color:        c.Color,
	}
	if c.Precision > 0 {
		precision := c.Precision
		s.DecimalPrecision = &precision
	}
	if c.NoMetadata {
		off := false
		s.AddMetaData = &off
	}
	if c.Predictable {
		on := true
		s.PredictableOutput = &on
	}
	return s
}

// openFile opens a file in the default application for the current platform
func openFile(filepath string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", filepath)
	case "linux":
		cmd = exec.Command("xdg-open", filepath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", filepath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func (c *ExportCmd) Run(ctx *kong.Context) error {
	stdout := ctx.Stdout
	if c.Output == preconditions.Stdout {
		// keep stdout clean for the document
		ui.SetOutput(ctx.Stderr)
	}

	var sink logger.Sink = ui.ConsoleSink{}
	if logToFile {
		sink = logger.Tee{sink, logger.NewZapSink(nil)}
	}
	planner := buildplan.NewPlanner(sink)
	plan, err := planner.CreatePlan(buildplan.Request{
		Inputs:     c.Files,
		Output:     c.Output,
		Overrides:  c.overrides(),
		Title:      c.Title,
		PrintModel: c.PrintModel,
		Stdout:     stdout,
		Stderr:     ctx.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to create build plan: %w", err)
	}

	if err := plan.Execute(); err != nil {
		logger.Log.Error("Export failed", zap.Error(err))
		return err
	}

	if c.Open && plan.Context.Project.Output != preconditions.Stdout {
		if err := openFile(plan.Context.Project.Output); err != nil {
			ui.PrintError("Failed to open file: " + err.Error())
		}
	}
	return nil
}

type PdfOptionsCmd struct {
	Show *PdfOptionsShowCmd `cmd:"" help:"Print the persisted PDF options"`
	Edit *PdfOptionsEditCmd `cmd:"" help:"Edit the PDF options interactively"`
}

// SettingsFlag selects the settings file of the pdf-options commands
type SettingsFlag struct {
	Settings string `help:"Settings file (.yaml or .toml)" type:"path"`
}

func (f SettingsFlag) open() (*settings.FileStore, error) {
	path := f.Settings
	if path == "" {
		path = settings.DefaultPath()
	}
	return settings.Open(path)
}

type PdfOptionsShowCmd struct {
	SettingsFlag `embed:""`
}

func (c *PdfOptionsShowCmd) Run() error {
	store, err := c.open()
	if err != nil {
		return err
	}
	printPdfOptions(store.Path(), pdfopts.NewDialog(store, nil))
	return nil
}

type PdfOptionsEditCmd struct {
	SettingsFlag `embed:""`
	Accessible bool `help:"Use the accessible prompt mode"`
}

func (c *PdfOptionsEditCmd) Run() error {
	store, err := c.open()
	if err != nil {
		return err
	}

	dialog := pdfopts.NewDialog(store, nil)
	accepted, err := dialog.Exec(&pdfopts.FormPrompter{Accessible: c.Accessible})
	if err != nil {
		return err
	}
	if !accepted {
		ui.PrintInfo("Cancelled, settings unchanged")
		return nil
	}

	ui.PrintSuccess("Saved PDF options")
	printPdfOptions(store.Path(), dialog)
	return nil
}

func printPdfOptions(path string, d *pdfopts.Dialog) {
	ui.PrintHeader("PDF options")
	ui.PrintKeyValue("Settings", path)
	ui.PrintKeyValue("Paper size", d.PaperSize().String())
	ui.PrintKeyValue("Orientation", d.Orientation().String())
	ui.PrintKeyValue("Show design filename", yesNo(d.ShowDesignFilename()))
	ui.PrintKeyValue("Show scale", yesNo(d.ShowScale()))
	ui.PrintKeyValue("Show scale message", yesNo(d.ShowScaleMsg()))
	ui.PrintKeyValue("Show grid", yesNo(d.ShowGrid()))
	ui.PrintKeyValue("Grid size", fmt.Sprintf("%g mm", d.GridSize()))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	info := version.Get()
	fmt.Fprintln(ctx.Stdout, info.String())
	fmt.Fprintf(ctx.Stdout, "3MF library %s\n", threemf.Version)
	return nil
}

// newParser creates the kong parser writing to the given streams
func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("go3mfexport"),
		kong.Description("3MF exporter for STL meshes and YAML projects"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout, os.Stderr, os.Exit)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	logger.Sync()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
