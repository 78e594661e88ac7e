package host

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"unyson/internal/clierr"
	"unyson/internal/util"
)

// WPCLI is a Host backed by the wp binary.
type WPCLI struct {
	Binary string
	Path   string // WordPress root; empty uses the working directory
	Slug   string
	Env    []string
	Runner util.Runner
	Stdout io.Writer
	Stderr io.Writer
}

// NewWPCLI builds a WPCLI host. Variables from envFile, if given, are added
// to the environment of every wp process.
func NewWPCLI(binary, path, slug, envFile string) (*WPCLI, error) {
	env, err := util.LoadEnvFile(envFile)
	if err != nil {
		return nil, err
	}
	return &WPCLI{
		Binary: binary,
		Path:   path,
		Slug:   slug,
		Env:    env,
		Runner: util.ExecRunner{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

func (w *WPCLI) command(args ...string) util.Command {
	argv := append([]string{}, args...)
	if w.Path != "" {
		argv = append(argv, "--path="+w.Path)
	}
	return util.Command{Name: w.Binary, Args: argv, Env: w.Env}
}

// check runs a predicate command. A silent exit status 1 means false; wp
// also exits 1 on its own errors, and those write to stderr.
func (w *WPCLI) check(ctx context.Context, op string, args ...string) (bool, error) {
	var stderr bytes.Buffer
	c := w.command(args...)
	c.Stdout = io.Discard
	c.Stderr = &stderr
	err := w.Runner.Run(ctx, c)
	if err == nil {
		return true, nil
	}
	msg := strings.TrimSpace(stderr.String())
	if util.ExitCode(err) == 1 && msg == "" {
		return false, nil
	}
	if msg != "" {
		err = fmt.Errorf("%w: %s", err, msg)
	}
	return false, clierr.ErrorHost(op, err)
}

func (w *WPCLI) PluginInstalled(ctx context.Context) (bool, error) {
	return w.check(ctx, "plugin is-installed", "plugin", "is-installed", w.Slug)
}

func (w *WPCLI) PluginActive(ctx context.Context) (bool, error) {
	return w.check(ctx, "plugin is-active", "plugin", "is-active", w.Slug)
}

func (w *WPCLI) PluginInfo(ctx context.Context) (PluginInfo, error) {
	installed, err := w.PluginInstalled(ctx)
	if err != nil {
		return PluginInfo{}, err
	}
	if !installed {
		return PluginInfo{}, clierr.ErrorNotInstalled(w.Slug)
	}

	out, err := util.Output(ctx, w.Runner, w.command("plugin", "get", w.Slug, "--format=json"))
	if err != nil {
		return PluginInfo{}, clierr.ErrorHost("plugin get", err)
	}
	var info PluginInfo
	if err := json.Unmarshal(lastLine(out), &info); err != nil {
		return PluginInfo{}, clierr.ErrorHost("plugin get", fmt.Errorf("failed to decode plugin data: %w", err))
	}
	return info, nil
}

func (w *WPCLI) Plugin(ctx context.Context, verb string, argv []string) error {
	args := append([]string{"plugin", verb, w.Slug}, argv...)
	return w.stream(ctx, "plugin "+verb, args)
}

func (w *WPCLI) WP(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return clierr.ErrorUsage("no wp command given")
	}
	return w.stream(ctx, argv[0], argv)
}

func (w *WPCLI) stream(ctx context.Context, op string, args []string) error {
	c := w.command(args...)
	c.Stdout = w.Stdout
	c.Stderr = w.Stderr
	if err := w.Runner.Run(ctx, c); err != nil {
		return clierr.ErrorHost(op, err)
	}
	return nil
}

func (w *WPCLI) InstalledExtensions(ctx context.Context) ([]string, error) {
	return w.list(ctx, "installed extensions", phpInstalled)
}

func (w *WPCLI) ActiveExtensions(ctx context.Context) ([]string, error) {
	return w.list(ctx, "active extensions", phpActive)
}

func (w *WPCLI) SupportedExtensions(ctx context.Context) ([]string, error) {
	return w.list(ctx, "supported extensions", phpSupported)
}

func (w *WPCLI) InstallExtensions(ctx context.Context, names []string, activate bool) error {
	return w.manage(ctx, "install", phpInstall, managerInput{Names: names, Activate: activate})
}

func (w *WPCLI) UninstallExtensions(ctx context.Context, names []string) error {
	return w.manage(ctx, "uninstall", phpUninstall, managerInput{Names: names})
}

func (w *WPCLI) ActivateExtensions(ctx context.Context, names []string) error {
	return w.manage(ctx, "activate", phpActivate, managerInput{Names: names})
}

func (w *WPCLI) DeactivateExtensions(ctx context.Context, names []string) error {
	return w.manage(ctx, "deactivate", phpDeactivate, managerInput{Names: names})
}

func (w *WPCLI) ExtensionVersion(ctx context.Context, name string) (string, error) {
	var version *string
	if err := w.eval(ctx, "extension version", phpVersion, managerInput{Name: name}, &version); err != nil {
		return "", err
	}
	if version == nil {
		return "", clierr.ErrorExtensionNotFound(name)
	}
	return *version, nil
}

// --- Extension manager calls ---

type managerInput struct {
	Names    []string `json:"names,omitempty"`
	Name     string   `json:"name,omitempty"`
	Activate bool     `json:"activate,omitempty"`
}

// envelope is the JSON answer every snippet prints.
type envelope struct {
	OK     bool            `json:"ok"`
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"errors"`
}

func (w *WPCLI) list(ctx context.Context, op, body string) ([]string, error) {
	var names []string
	if err := w.eval(ctx, op, body, managerInput{}, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (w *WPCLI) manage(ctx context.Context, op, body string, in managerInput) error {
	return w.eval(ctx, op, body, in, nil)
}

// eval runs a PHP snippet through `wp eval` and decodes the data of its
// answer into out, when out is non-nil.
func (w *WPCLI) eval(ctx context.Context, op, body string, in managerInput, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s input: %w", op, err)
	}
	code := renderSnippet(body, base64.StdEncoding.EncodeToString(payload))

	raw, err := util.Output(ctx, w.Runner, w.command("eval", code))
	if err != nil {
		return clierr.ErrorHost(op, err)
	}
	line := lastLine(raw)

	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return clierr.ErrorHost(op, fmt.Errorf("unexpected answer %q: %w", string(line), err))
	}
	if !env.OK {
		if len(env.Errors) == 0 {
			env.Errors = []string{"extension " + op + " failed"}
		}
		return clierr.ErrorHostMessages(op, env.Errors)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return clierr.ErrorHost(op, fmt.Errorf("unexpected answer data %q: %w", string(env.Data), err))
	}
	return nil
}

// lastLine returns the final non-blank line of out. WordPress notices
// printed earlier in the request are skipped.
func lastLine(out []byte) []byte {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return []byte(l)
		}
	}
	return nil
}
