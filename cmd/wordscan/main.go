package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Input file (default stdin)")
		hexInput    = flag.Bool("hex", false, "Parse input as whitespace-separated word literals instead of raw little-endian bytes")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	words, name, err := loadWords(*inFile, *hexInput, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(name, words); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	dump(os.Stdout, name, words)
}

func loadWords(path string, hexInput bool, logger *zap.Logger) ([]uint32, string, error) {
	var (
		data []byte
		name string
		err  error
	)
	if path == "" {
		name = "stdin"
		data, err = io.ReadAll(os.Stdin)
	} else {
		name = path
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	logger.Debug("input loaded", zap.String("source", name), zap.Int("bytes", len(data)))

	var words []uint32
	if hexInput {
		words, err = parseWordLiterals(string(data))
	} else {
		words, err = parseRawWords(data)
	}
	if err != nil {
		return nil, "", err
	}
	logger.Debug("words parsed", zap.Int("count", len(words)))
	return words, name, nil
}

// parseRawWords interprets the input as a stream of little-endian words.
func parseRawWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw input is %d bytes, not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

// parseWordLiterals accepts whitespace or comma separated decimal and 0x
// literals, one word each.
func parseWordLiterals(text string) ([]uint32, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	words := make([]uint32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("word literal %q: %w", f, err)
		}
		words = append(words, uint32(v))
	}
	return words, nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))
)

func dump(w io.Writer, name string, words []uint32) {
	fmt.Fprintf(w, "%s %s (%d words)\n\n", headerStyle.Render("wordscan"), name, len(words))
	fmt.Fprintf(w, "%s\n", indexStyle.Render("index  hex         dec          lanes        ascii"))
	for i, word := range words {
		fmt.Fprintf(w, "%s  %s  %11d  %s  %s\n",
			indexStyle.Render(fmt.Sprintf("%5d", i)),
			hexStyle.Render(fmt.Sprintf("0x%08X", word)),
			word,
			laneString(word),
			asciiStyle.Render(asciiLanes(word)),
		)
	}
}

// laneString renders the four byte lanes of a word, least-significant first,
// matching the order packed bytes occupy on the wire.
func laneString(word uint32) string {
	return fmt.Sprintf("%02X %02X %02X %02X",
		byte(word), byte(word>>8), byte(word>>16), byte(word>>24))
}

func asciiLanes(word uint32) string {
	lanes := [4]byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}
	var b strings.Builder
	for _, c := range lanes {
		if c >= 0x20 && c < 0x7F {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// interpretations renders every shape a single word can carry.
func interpretations(word uint32) []string {
	out := []string{
		fmt.Sprintf("hex      0x%08X", word),
		fmt.Sprintf("u32      %d", word),
		fmt.Sprintf("s32      %d", int32(word)),
		fmt.Sprintf("f32      %g", math.Float32frombits(word)),
		fmt.Sprintf("lanes    %s  %q", laneString(word), asciiLanes(word)),
	}
	if r := rune(word); word <= unicode.MaxRune && !unicode.Is(unicode.Cs, r) && unicode.IsPrint(r) {
		out = append(out, fmt.Sprintf("char     %q", r))
	}
	return out
}
