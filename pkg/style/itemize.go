package style

import (
	"bytes"
	"io"
	"strings"
)

// ItemizeFilter is an io.Writer that scans rsync --itemize-changes
// output and highlights files arriving newer than their destination
// counterparts. It replaces the shell pipe stage older fpsync
// versions appended to every command; cosmetic only.
type ItemizeFilter struct {
	out       io.Writer
	colorized bool
	buf       bytes.Buffer
}

// NewItemizeFilter wraps out with itemize highlighting
func NewItemizeFilter(out io.Writer, colorized bool) *ItemizeFilter {
	return &ItemizeFilter{out: out, colorized: colorized}
}

// Write buffers partial lines and flushes complete ones, styled
func (f *ItemizeFilter) Write(p []byte) (int, error) {
	f.buf.Write(p)

	for {
		line, err := f.buf.ReadString('\n')
		if err != nil {
			// Partial line, keep it buffered for the next Write
			f.buf.WriteString(line)
			break
		}
		if _, err := io.WriteString(f.out, f.render(line)); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

// Flush writes any trailing unterminated line
func (f *ItemizeFilter) Flush() error {
	if f.buf.Len() == 0 {
		return nil
	}
	line := f.buf.String()
	f.buf.Reset()
	_, err := io.WriteString(f.out, f.render(line))
	return err
}

// render highlights transferred-file lines. In itemize output ">f"
// marks a file received by the destination, "<f" one sent to it.
func (f *ItemizeFilter) render(line string) string {
	if !f.colorized || !isTransferLine(line) {
		return line
	}
	trimmed := strings.TrimSuffix(line, "\n")
	styled := NewerStyle.Render(trimmed)
	if trimmed == line {
		return styled
	}
	return styled + "\n"
}

func isTransferLine(line string) bool {
	return strings.HasPrefix(line, ">f") || strings.HasPrefix(line, "<f")
}
