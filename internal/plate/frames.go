package plate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single row line; wide plates export long rows.
const maxLineBytes = 1 << 20

// ReadFrames parses a plain-text recording made of frame blocks. Each block
// starts with a line beginning with "Frame" and is followed by one line per
// sensor row holding whitespace, comma or semicolon separated readings.
// Blank lines are ignored. Every frame must have the same shape.
func ReadFrames(r io.Reader) (*Tensor, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		frames  [][][]float64
		current [][]float64
		inFrame bool
		lineNo  int
	)
	flush := func() {
		if inFrame {
			frames = append(frames, current)
		}
		current = nil
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "frame") {
			flush()
			inFrame = true
			continue
		}
		if !inFrame {
			return nil, fmt.Errorf("line %d: reading outside of a frame block", lineNo)
		}
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == ';'
		})
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			row[i] = v
		}
		current = append(current, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frames: %w", err)
	}
	flush()

	if len(frames) == 0 || len(frames[0]) == 0 || len(frames[0][0]) == 0 {
		return nil, fmt.Errorf("%w: no frames found", ErrShape)
	}
	rows, cols := len(frames[0]), len(frames[0][0])
	data := make([]float64, 0, rows*cols*len(frames))
	for f, frame := range frames {
		if len(frame) != rows {
			return nil, fmt.Errorf("%w: frame %d has %d rows, want %d", ErrShape, f, len(frame), rows)
		}
		for r, row := range frame {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: frame %d row %d has %d columns, want %d", ErrShape, f, r, len(row), cols)
			}
			data = append(data, row...)
		}
	}
	return New(rows, cols, len(frames), data)
}

// WriteFrames writes t in the format read by ReadFrames.
func WriteFrames(w io.Writer, t *Tensor) error {
	bw := bufio.NewWriter(w)
	for f := 0; f < t.frames; f++ {
		if _, err := fmt.Fprintf(bw, "Frame %d\n", f); err != nil {
			return err
		}
		for r := 0; r < t.rows; r++ {
			for c := 0; c < t.cols; c++ {
				if c > 0 {
					if err := bw.WriteByte(' '); err != nil {
						return err
					}
				}
				if _, err := bw.WriteString(strconv.FormatFloat(t.At(r, c, f), 'g', -1, 64)); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
