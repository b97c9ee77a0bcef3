package definition

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Problem is a single decoding or validation finding.
type Problem struct {
	Pos     Position
	Message string
}

func (p Problem) String() string {
	return p.Pos.String() + ": " + p.Message
}

// ValidationError collects every problem found in a definition file.
type ValidationError struct {
	File     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if e.File != "" {
			lines[i] = e.File + ":" + p.String()
		} else {
			lines[i] = p.String()
		}
	}
	return strings.Join(lines, "\n")
}

var yamlLineRe = regexp.MustCompile(`^(?:yaml: )?line (\d+):(?: column (\d+):)? (.*)$`)

// problemsFromYAML turns the messages of a yaml.v3 error into problems.
// Messages without a line number are reported at 1:1.
func problemsFromYAML(err error) []Problem {
	var messages []string
	if te, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range te.Unwrap() {
			messages = append(messages, e.Error())
		}
	} else {
		messages = strings.Split(err.Error(), "\n")
	}

	var problems []Problem
	for _, msg := range messages {
		msg = strings.TrimSpace(msg)
		if msg == "" || msg == "yaml: unmarshal errors:" {
			continue
		}
		m := yamlLineRe.FindStringSubmatch(msg)
		if m == nil {
			problems = append(problems, Problem{Pos: Position{Line: 1, Column: 1}, Message: strings.TrimPrefix(msg, "yaml: ")})
			continue
		}
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		problems = append(problems, Problem{Pos: Position{Line: line, Column: col}, Message: m[3]})
	}
	return problems
}

func sortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		a, b := problems[i].Pos, problems[j].Pos
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

type problems []Problem

func (ps *problems) add(pos Position, format string, args ...any) {
	*ps = append(*ps, Problem{Pos: pos, Message: fmt.Sprintf(format, args...)})
}
