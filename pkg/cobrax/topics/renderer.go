package topics

import "io"

// Renderer writes a topic body to w. ext is the extension of the topic file,
// such as ".md" or ".txt".
type Renderer interface {
	Render(w io.Writer, content, ext string) error
}

// PlainRenderer writes topics verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(w io.Writer, content, ext string) error {
	_, err := io.WriteString(w, content)
	return err
}
