package program

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atlas77-lang/atlas77/internal/bytecode"
	"github.com/atlas77-lang/atlas77/internal/constant"
)

// WriteText serialises p as the human-readable record named in §6: the
// entry point and the library list, then the labels in order with each
// instruction on its own line, then the three constant-pool tables. Round-tripping through Parse
// preserves instruction order, constant-pool indices, and label positions.
func (p *Program) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "entry %s\n", p.EntryPoint)
	for _, lib := range p.Libraries {
		fmt.Fprintf(bw, "library %s %t\n", lib.Name, lib.IsStd)
	}
	for _, l := range p.Labels {
		fmt.Fprintf(bw, ".label %s\n", l.Name)
		for _, ins := range l.Body {
			fmt.Fprintf(bw, "  %s\n", ins.String())
		}
	}
	fmt.Fprintln(bw, ".strings")
	for i, s := range p.Global.StringPool {
		fmt.Fprintf(bw, "  %d %s\n", i, strconv.Quote(s))
	}
	fmt.Fprintln(bw, ".list_pool")
	if p.Global.ListPool != nil {
		for i, c := range p.Global.ListPool.Entries {
			fmt.Fprintf(bw, "  %d %s\n", i, constant.Format(c))
		}
	}
	fmt.Fprintln(bw, ".function_pool")
	for i, off := range p.Global.FunctionPool {
		fmt.Fprintf(bw, "  %d %d\n", i, off)
	}

	return bw.Flush()
}

// Parse reads a Program from the text format produced by WriteText.
func Parse(r io.Reader) (*Program, error) {
	p := &Program{Global: Global{ListPool: &constant.Pool{}}}

	var curLabel *Label
	section := ""

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "entry "):
			p.EntryPoint = strings.TrimSpace(strings.TrimPrefix(line, "entry "))
			continue
		case strings.HasPrefix(line, "library "):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, fmt.Errorf("program: line %d: malformed library directive", lineNo)
			}
			isStd, err := strconv.ParseBool(fields[2])
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			p.Libraries = append(p.Libraries, Library{Name: fields[1], IsStd: isStd})
			continue
		case strings.HasPrefix(line, ".label "):
			name := strings.TrimSpace(strings.TrimPrefix(line, ".label "))
			p.Labels = append(p.Labels, Label{Name: name, Position: p.Len()})
			curLabel = &p.Labels[len(p.Labels)-1]
			section = "label"
			continue
		case line == ".strings":
			section = "strings"
			continue
		case line == ".list_pool":
			section = "list_pool"
			continue
		case line == ".function_pool":
			section = "function_pool"
			continue
		}

		switch section {
		case "label":
			ins, err := bytecode.ParseInstruction(line)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			curLabel.Body = append(curLabel.Body, ins)
		case "strings":
			idx, s, err := splitIndexed(line)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			v, err := strconv.Unquote(s)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			if err := setAt(&p.Global.StringPool, idx, v); err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
		case "list_pool":
			idx, s, err := splitIndexed(line)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			c, err := constant.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			if err := setAt(&p.Global.ListPool.Entries, idx, c); err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
		case "function_pool":
			idx, s, err := splitIndexed(line)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			off, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
			if err := setAt(&p.Global.FunctionPool, idx, off); err != nil {
				return nil, fmt.Errorf("program: line %d: %w", lineNo, err)
			}
		default:
			return nil, fmt.Errorf("program: line %d: instruction outside any label", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func splitIndexed(line string) (int, string, error) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return 0, "", fmt.Errorf("malformed indexed entry %q", line)
	}
	idx, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, "", err
	}
	return idx, strings.TrimSpace(line[i:]), nil
}

func setAt[T any](slice *[]T, idx int, v T) error {
	if idx < 0 {
		return fmt.Errorf("negative index %d", idx)
	}
	for len(*slice) <= idx {
		var zero T
		*slice = append(*slice, zero)
	}
	(*slice)[idx] = v
	return nil
}
