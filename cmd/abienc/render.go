package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/term"

	"github.com/wippyai/evm-abi/abi"
)

var (
	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98"))
)

type renderer struct {
	w     io.Writer
	color bool
}

func newRenderer(w io.Writer) *renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &renderer{w: w, color: color}
}

func (r *renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *renderer) heading(title string) {
	fmt.Fprintln(r.w, r.style(headingStyle, "# "+title))
}

func (r *renderer) note(text string) {
	fmt.Fprintln(r.w, r.style(offsetStyle, text))
}

func (r *renderer) raw(buf []byte) {
	fmt.Fprintln(r.w, hexutil.Encode(buf))
}

// words prints buf one 32-byte word per line. The first prefixLen bytes,
// such as a 4-byte selector, get their own line.
func (r *renderer) words(buf []byte, prefixLen int) {
	for _, line := range formatWords(buf, prefixLen) {
		fmt.Fprintf(r.w, "%s  %s\n", r.style(offsetStyle, line.offset), r.style(wordStyle, line.hex))
	}
}

type wordLine struct {
	offset string
	hex    string
}

func formatWords(buf []byte, prefixLen int) []wordLine {
	var lines []wordLine
	if prefixLen > 0 {
		lines = append(lines, wordLine{offset: "prefix", hex: common.Bytes2Hex(buf[:prefixLen])})
		buf = buf[prefixLen:]
	}
	for off := 0; off < len(buf); off += abi.WordSize {
		end := min(off+abi.WordSize, len(buf))
		lines = append(lines, wordLine{
			offset: fmt.Sprintf("0x%04x", off),
			hex:    common.Bytes2Hex(buf[off:end]),
		})
	}
	return lines
}
