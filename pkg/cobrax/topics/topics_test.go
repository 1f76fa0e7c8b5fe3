package topics

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpFS() fstest.MapFS {
	return fstest.MapFS{
		"help/dry-run.txt":         {Data: []byte("Information about dry-run mode")},
		"help/architecture.md":     {Data: []byte("# Architecture\n\nSystem architecture details")},
		"help/config.txxt":         {Data: []byte("Configuration Guide\n==================")},
		"help/ignore.json":         {Data: []byte("This should be ignored")},
		"help/nested/option-x.txt": {Data: []byte("Nested option help")},
		"other/outside.txt":        {Data: []byte("not a topic")},
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		want       map[string]bool
	}{
		{
			name: "default extensions",
			want: map[string]bool{"dry-run": true, "architecture": true, "config": false, "ignore": false, "option-x": true, "outside": false},
		},
		{
			name:       "custom extensions",
			extensions: []string{".txt", ".md", ".txxt"},
			want:       map[string]bool{"dry-run": true, "architecture": true, "config": true, "ignore": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(helpFS(), "help", Options{Extensions: tt.extensions})
			require.NoError(t, tm.Scan())
			for name, exists := range tt.want {
				_, ok := tm.GetTopic(name)
				assert.Equal(t, exists, ok, name)
			}
		})
	}

	tm := New(helpFS(), "help", Options{})
	require.NoError(t, tm.Scan())
	topic, ok := tm.GetTopic("architecture")
	require.True(t, ok)
	assert.Equal(t, "# Architecture\n\nSystem architecture details", topic.Content)
	assert.Equal(t, "help/architecture.md", topic.FilePath)
}

func TestScanMissingRoot(t *testing.T) {
	tm := New(fstest.MapFS{}, "help", Options{})
	require.NoError(t, tm.Scan())
	assert.Empty(t, tm.ListTopics())
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(fstest.MapFS{
		"t/option-dry-run.txt": {Data: []byte("Dry run help")},
		"t/option-verbose.txt": {Data: []byte("Verbose help")},
		"t/architecture.txt":   {Data: []byte("Architecture help")},
	}, "t", Options{})
	require.NoError(t, tm.Scan())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"architecture", "architecture", true},
		{"option-dry-run", "option-dry-run", true},
		{"dry-run", "option-dry-run", true},
		{"--dry-run", "option-dry-run", true},
		{"-dry-run", "option-dry-run", true},
		{"--verbose", "option-verbose", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}

	assert.Equal(t, []string{"architecture", "option-dry-run", "option-verbose"}, tm.ListTopics())
}

func TestWriteTopicList(t *testing.T) {
	tm := New(fstest.MapFS{
		"t/option-dry-run.txt": {Data: []byte("x")},
		"t/targets.md":         {Data: []byte("x")},
	}, "t", Options{})
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteTopicList(&buf, "envtmpl")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  targets\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "Use 'envtmpl help <topic>'")

	buf.Reset()
	New(fstest.MapFS{}, "t", Options{}).WriteTopicList(&buf, "envtmpl")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

type upperRenderer struct{ formats []string }

func (r *upperRenderer) Render(w io.Writer, content, ext string) error {
	r.formats = append(r.formats, ext)
	_, err := io.WriteString(w, strings.ToUpper(content))
	return err
}

func newRoot(t *testing.T, r Renderer) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "envtmpl", Short: "root short", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "render", Short: "render short", Run: func(*cobra.Command, []string) {}})
	_, err := Initialize(root, helpFS(), "help", Options{Renderer: r})
	require.NoError(t, err)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	return root, &buf
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		r := &upperRenderer{}
		root, buf := newRoot(t, r)
		root.SetArgs([]string{"help", "dry-run"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "INFORMATION ABOUT DRY-RUN MODE", buf.String())
		assert.Equal(t, []string{".txt"}, r.formats)
	})

	t.Run("flag style topic", func(t *testing.T) {
		root, buf := newRoot(t, &upperRenderer{})
		root.SetArgs([]string{"help", "--dry-run"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "INFORMATION ABOUT DRY-RUN MODE", buf.String())
	})

	t.Run("topics list", func(t *testing.T) {
		root, buf := newRoot(t, nil)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "Available help topics:")
		assert.Contains(t, buf.String(), "architecture")
	})

	t.Run("command", func(t *testing.T) {
		root, buf := newRoot(t, nil)
		root.SetArgs([]string{"help", "render"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "render short")
	})

	t.Run("root flags before the topic", func(t *testing.T) {
		root, buf := newRoot(t, &upperRenderer{})
		format := root.PersistentFlags().String("format", "", "")
		verbose := root.PersistentFlags().CountP("verbose", "v", "")
		root.SetArgs([]string{"help", "--format", "text", "-v", "--verbose", "dry-run"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "INFORMATION ABOUT DRY-RUN MODE", buf.String())
		assert.Equal(t, "text", *format)
		assert.Equal(t, 2, *verbose)
	})

	t.Run("no args", func(t *testing.T) {
		root, buf := newRoot(t, nil)
		root.SetArgs([]string{"help"})
		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "root short")
	})
}

func TestPlainRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlainRenderer{}.Render(&buf, "# x", ".md"))
	assert.Equal(t, "# x", buf.String())
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGlamourRenderer().Render(&buf, "plain text", ".txt"))
	assert.Equal(t, "plain text", buf.String())
}

func TestGlamourRendererMarkdown(t *testing.T) {
	var buf bytes.Buffer
	r := &GlamourRenderer{Style: "notty", Width: 40}
	require.NoError(t, r.Render(&buf, "# Title\n\nSome *body* text.", ".md"))
	assert.Contains(t, buf.String(), "Title")
	assert.Contains(t, buf.String(), "body")
}

func TestGlamourRendererPlainWriters(t *testing.T) {
	var seen []io.Writer
	r := &GlamourRenderer{
		Style: "dark",
		Plain: func(w io.Writer) bool {
			seen = append(seen, w)
			return true
		},
	}

	content := "# Title\n\nSome **bold** text."
	var buf, notty bytes.Buffer
	require.NoError(t, r.Render(&buf, content, ".md"))
	require.NoError(t, (&GlamourRenderer{Style: "notty"}).Render(&notty, content, ".md"))

	assert.Contains(t, buf.String(), "Title")
	assert.Equal(t, notty.String(), buf.String())
	require.Len(t, seen, 1)
	assert.Same(t, &buf, seen[0])
}

func TestNoColor(t *testing.T) {
	assert.True(t, NoColor(&bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.True(t, NoColor(os.Stdout))
}
