package batch

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/filesystem"
	"github.com/talss89/envtmpl/pkg/render"
	"github.com/talss89/envtmpl/pkg/renderctx"
	"github.com/talss89/envtmpl/pkg/targets"
	"github.com/talss89/envtmpl/pkg/types"
)

type recorder struct {
	events []Event
}

func (r *recorder) FileRendered(e Event) { r.events = append(r.events, e) }

func (r *recorder) outputs() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Pair.Output
	}
	return out
}

func newDriver(t *testing.T, fsys types.FS, env map[string]string, overwrite bool) (Driver, *recorder) {
	t.Helper()
	rec := &recorder{}
	return Driver{
		FS:       fsys,
		Resolver: targets.Resolver{FS: fsys, Overwrite: overwrite},
		Renderer: render.Service{Engine: render.NewTextEngine(), Context: renderctx.Fixed(env)},
		Reporter: rec,
	}, rec
}

func write(t *testing.T, fsys types.FS, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(name), types.DirPerm))
		require.NoError(t, fsys.WriteFile(name, []byte(content), types.FilePerm))
	}
}

func read(t *testing.T, fsys types.FS, name string) string {
	t.Helper()
	data, err := fsys.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func TestRunDirectoryEndToEnd(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/src/a.txt":   "Hello {{ .Env.NAME }}",
		"/src/b/c.txt": `{{ default "x" .Env.MISSING }}`,
	})

	d, rec := newDriver(t, fsys, map[string]string{"NAME": "World"}, true)
	summary, err := d.Run(context.Background(), []string{"/src:/out"})
	require.NoError(t, err)

	assert.Equal(t, Summary{Specs: 1, Files: 2}, summary)
	assert.Equal(t, "Hello World", read(t, fsys, "/out/a.txt"))
	assert.Equal(t, "x", read(t, fsys, "/out/b/c.txt"))
	assert.Equal(t, []string{"/out/a.txt", "/out/b/c.txt"}, rec.outputs())
	assert.Equal(t, "/src:/out", rec.events[0].Spec.Raw)
	assert.Equal(t, len("Hello World"), rec.events[0].Bytes)
}

func TestRunWithoutOverwriteRefusesExistingOutput(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/src/a.txt":   "Hello {{ .Env.NAME }}",
		"/src/b/c.txt": "static",
	})

	first, _ := newDriver(t, fsys, map[string]string{"NAME": "World"}, true)
	_, err := first.Run(context.Background(), []string{"/src:/out"})
	require.NoError(t, err)

	second, rec := newDriver(t, fsys, map[string]string{"NAME": "Changed"}, false)
	summary, err := second.Run(context.Background(), []string{"/src:/out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutputExists))
	assert.Equal(t, Summary{}, summary)
	assert.Empty(t, rec.events)
	assert.Equal(t, "Hello World", read(t, fsys, "/out/a.txt"))
}

func TestRunDirectoryToFileRejectedBeforeRendering(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/src/a.txt": "{{ .Env.NAME }}",
		"/out.txt":   "keep",
	})

	d, rec := newDriver(t, fsys, nil, true)
	_, err := d.Run(context.Background(), []string{"/src:/out.txt"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetConflict))
	assert.Empty(t, rec.events)
	assert.Equal(t, "keep", read(t, fsys, "/out.txt"))
}

func TestRunParsesAllTargetsFirst(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{"/a.tmpl": "a"})

	d, rec := newDriver(t, fsys, nil, false)
	_, err := d.Run(context.Background(), []string{"/a.tmpl:/a.out", "bad-target"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetFormat))
	assert.Empty(t, rec.events)

	_, statErr := fsys.Stat("/a.out")
	assert.Error(t, statErr)
}

func TestRunStopsAtFirstFailureWithoutRollback(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/src/1.txt": "one",
		"/src/2.txt": "{{ div 1 0 }}",
		"/src/3.txt": "three",
	})

	d, rec := newDriver(t, fsys, nil, false)
	summary, err := d.Run(context.Background(), []string{"/src:/out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateExec))
	assert.True(t, errors.IsErrorCode(err, errors.ErrFuncValue))
	assert.Equal(t, "/src/2.txt", errors.GetErrorDetails(err)["input"])
	assert.Equal(t, "/out/2.txt", errors.GetErrorDetails(err)["output"])

	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, []string{"/out/1.txt"}, rec.outputs())
	assert.Equal(t, "one", read(t, fsys, "/out/1.txt"))
	_, statErr := fsys.Stat("/out/2.txt")
	assert.Error(t, statErr)
	_, statErr = fsys.Stat("/out/3.txt")
	assert.Error(t, statErr)
}

func TestRunMultipleTargetsInOrder(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/t/z.tmpl":     "z={{ .Env.Z }}",
		"/t/dir/a.tmpl": "a",
	})

	d, rec := newDriver(t, fsys, map[string]string{"Z": "26"}, false)
	summary, err := d.Run(context.Background(), []string{"/t/z.tmpl:/etc/z.conf", "/t/dir:/etc/dir"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Specs: 2, Files: 2}, summary)
	assert.Equal(t, []string{"/etc/z.conf", "/etc/dir/a.tmpl"}, rec.outputs())
	assert.Equal(t, "z=26", read(t, fsys, "/etc/z.conf"))
}

func TestRunDryRunWritesNothing(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{
		"/src/a.txt":   "Hello {{ .Env.NAME }}",
		"/src/b/c.txt": "c",
	})

	d, rec := newDriver(t, fsys, map[string]string{"NAME": "World"}, false)
	d.DryRun = true
	summary, err := d.Run(context.Background(), []string{"/src:/out"})
	require.NoError(t, err)
	assert.Equal(t, Summary{Specs: 1, Files: 2}, summary)
	require.Len(t, rec.events, 2)
	assert.True(t, rec.events[0].DryRun)

	_, statErr := fsys.Stat("/out")
	assert.Error(t, statErr)
}

func TestRunDryRunStillReportsRenderErrors(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{"/a.tmpl": "{{ lower }}"})

	d, _ := newDriver(t, fsys, nil, false)
	d.DryRun = true
	_, err := d.Run(context.Background(), []string{"/a.tmpl:/a.out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFuncArity))
}

func TestRunCancelled(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{"/a.tmpl": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, rec := newDriver(t, fsys, nil, false)
	_, err := d.Run(ctx, []string{"/a.tmpl:/a.out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.Empty(t, rec.events)
}

func TestRunCancelledBetweenFiles(t *testing.T) {
	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{"/src/1": "1", "/src/2": "2"})

	ctx, cancel := context.WithCancel(context.Background())
	d, _ := newDriver(t, fsys, nil, false)
	d.Reporter = ReporterFunc(func(Event) { cancel() })

	summary, err := d.Run(ctx, []string{"/src:/out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.Equal(t, 1, summary.Files)
}

func TestRunMissingInput(t *testing.T) {
	d, _ := newDriver(t, filesystem.NewMemory(), nil, true)
	_, err := d.Run(context.Background(), []string{"/nope:/out"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInputNotFound))
}

func TestRunNoTargets(t *testing.T) {
	d, _ := newDriver(t, filesystem.NewMemory(), nil, true)
	_, err := d.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRunOnDisk(t *testing.T) {
	root := t.TempDir()
	fsys := filesystem.NewOS()
	in := filepath.Join(root, "templates")
	out := filepath.Join(root, "rendered")
	write(t, fsys, map[string]string{
		filepath.Join(in, "nginx", "site.conf"): "listen {{ .Env.PORT | default \"80\" }};",
	})

	d, _ := newDriver(t, fsys, map[string]string{"PORT": "8443"}, false)
	_, err := d.Run(context.Background(), []string{in + ":" + out})
	require.NoError(t, err)
	assert.Equal(t, "listen 8443;", read(t, fsys, filepath.Join(out, "nginx", "site.conf")))
}

func TestRunLogsTargetFields(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()

	fsys := filesystem.NewMemory()
	write(t, fsys, map[string]string{"/src/a.txt": "a", "/src/b.txt": "b"})

	d, _ := newDriver(t, fsys, nil, true)
	_, err := d.Run(context.Background(), []string{"/src:/out"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"component":"batch","target":"/src:/out","files":2,"message":"Expanded target"`)
}
